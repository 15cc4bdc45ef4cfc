package textnorm

// stopwords is the canonical closed set: formal function words followed by
// common Egyptian dialect forms. Entries are written in their usual spelling
// and folded by New.
var stopwords = []string{
	// prepositions and conjunctions
	"من", "إلى", "على", "في", "عن", "مع", "منذ", "خلال", "بين", "نحو",
	"فوق", "تحت", "أمام", "خلف", "بعد", "قبل", "عند", "حول", "ضد",
	"و", "ف", "ثم", "أو", "أم", "بل", "لكن", "لأن", "حتى", "كي",
	"س", "ل", "ب", "ك",

	// demonstratives and relatives
	"هذا", "هذه", "ذلك", "تلك", "هنا", "هناك",
	"الذي", "التي", "الذين", "اللذين", "اللتين", "اللواتي", "اللائي",

	// pronouns
	"هو", "هي", "هم", "هن", "أنا", "نحن", "أنت", "أنتم", "أنتن",

	// auxiliaries and particles
	"كان", "كانت", "كانوا", "يكون", "تكون", "أن", "إن",
	"لا", "ما", "لم", "لن", "قد", "لقد", "سوف", "إذا", "إذ", "لو",
	"هل", "نعم",

	// interrogatives
	"كيف", "أين", "متى", "كم", "أي", "ماذا", "لماذا",

	// quantifiers and fillers
	"كل", "بعض", "غير", "سوى", "مثل", "نفس", "ذات", "كلا", "كلتا",
	"الآن", "أيضا", "جدا", "فقط", "حيث", "بينما",

	// dialect
	"ده", "دي", "دول", "اللي", "بتاع", "بتاعة", "بتوع", "عشان", "علشان",
	"كده", "ازاي", "إزاي", "ليه", "فين", "إمتى", "مين", "إيه", "أيه",
	"يعني", "بس", "كمان", "برضو", "برضه", "خلاص", "طيب", "ماشي",
}
