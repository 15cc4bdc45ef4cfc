package categories

import "librisk/internal/models"

// DefaultCategoryName is the explicit fallback ("general").
const DefaultCategoryName = "عام"

// CuratedTable is the built-in category metadata in its fixed declaration
// order. Fallback matching walks it in this order. Aliases cover spellings
// without hamza, which substring matching cannot reach.
func CuratedTable() []models.Category {
	return []models.Category{
		{
			Name:        "أمنية",
			Description: "مخاطر تتعلق بالأمن والحماية والسرقة والتخريب",
			Solutions:   []string{"تركيب كاميرات مراقبة", "توظيف حراس أمن", "تركيب بوابات إلكترونية", "وضع شرائح أمان على الكتب"},
			Aliases:     []string{"امنية", "امني"},
		},
		{
			Name:        "بيئية",
			Description: "مخاطر بيئية وطبيعية مثل الرطوبة والحرارة والحشرات",
			Solutions:   []string{"تركيب نظام تكييف مركزي", "صيانة دورية لنظام التهوية", "عزل النوافذ والأسقف", "رش مبيدات حشرية آمنة"},
		},
		{
			Name:        "تقنية",
			Description: "مخاطر تقنية وتكنولوجية مثل أعطال الأنظمة والشبكات",
			Solutions:   []string{"تحديث الأنظمة بانتظام", "عمل نسخ احتياطية يومية", "تركيب برامج حماية", "التعاقد مع دعم فني"},
		},
		{
			Name:        "تشغيلية",
			Description: "مخاطر تشغيلية يومية مثل تأخر الخدمات وأخطاء العمليات",
			Solutions:   []string{"وضع إجراءات تشغيلية موحدة", "تدريب الموظفين على الإجراءات", "أتمتة العمليات الروتينية", "متابعة دورية للعمليات"},
		},
		{
			Name:        "إدارية",
			Description: "مخاطر إدارية مثل نقص الموظفين وضعف التواصل",
			Solutions:   []string{"وضع خطة استراتيجية", "تحسين التواصل الداخلي", "توفير ميزانية كافية", "تدريب وتطوير الموظفين"},
			Aliases:     []string{"ادارية", "اداري"},
		},
		{
			Name:        "مادية/معدات",
			Description: "مخاطر مادية ومعدات مثل أعطال الأجهزة والأثاث",
			Solutions:   []string{"صيانة دورية للمعدات", "استبدال المعدات القديمة", "توفير قطع غيار احتياطية", "التعاقد مع شركة صيانة"},
		},
	}
}

// DefaultCategory is returned when nothing else matches.
func DefaultCategory() models.Category {
	return models.Category{
		Name:        DefaultCategoryName,
		Description: "مخاطر عامة متنوعة",
		Solutions:   []string{"تقييم شامل للمخاطر", "وضع خطط طوارئ", "مراجعة دورية للإجراءات"},
	}
}
