package textnorm

const (
	lowerLetters = `a-zàáảãạăắằẳẵặâấầẩẫậèéẻẽẹêếềểễệìíỉĩịòóỏõọôốồổỗộơớờởỡợùúủũụưứừửữựỳýỷỹỵđ`
	upperLetters = `A-ZÀÁẢÃẠĂẮẰẲẴẶÂẤẦẨẪẬÈÉẺẼẸÊẾỀỂỄỆÌÍỈĨỊÒÓỎÕỌÔỐỒỔỖỘƠỚỜỞỠỢÙÚỦŨỤƯỨỪỬỮỰỲÝỶỸỴĐ`
)

// leadIns are phrases models put before the actual answer.
var leadIns = []string{
	"Đây là",
	"Tóm tắt:",
	"Đoạn văn",
	"Dưới đây",
	"Kết quả:",
	"Bài tin:",
}

// syllableEndings are finals after which a model often drops the space
// before the next syllable.
var syllableEndings = []string{"án", "ến", "ông", "ình", "ất", "ệt", "ực"}
