package summarizer

import "fmt"

const chunkPrompt = `Tóm tắt đoạn văn sau (phần %d/%d) thành 2-3 câu ngắn gọn:

"%s"

Tóm tắt:`

const combinePrompt = `Viết lại thành bài tin tức hoàn chỉnh, khoảng %d từ.

Tiêu đề: %s
Nội dung: %s

QUY TẮC: Số viết liền (1890), ngày viết chữ (mùng 8 tháng 1), câu hoàn chỉnh.

Bài tin:`

const directPrompt = `Tóm tắt bài báo sau thành khoảng %d từ:

Tiêu đề: %s
Nội dung: %s

QUY TẮC: Số viết liền, ngày viết chữ, câu hoàn chỉnh.

Tóm tắt:`

func buildChunkPrompt(chunk string, index, total int) string {
	return fmt.Sprintf(chunkPrompt, index, total, chunk)
}

func buildCombinePrompt(title, combined string, targetWords int) string {
	return fmt.Sprintf(combinePrompt, targetWords, title, combined)
}

func buildDirectPrompt(title, body string, targetWords int) string {
	return fmt.Sprintf(directPrompt, targetWords, title, body)
}
