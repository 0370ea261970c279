package schema

import "fmt"

func str(description string) *Node {
	return &Node{Type: TypeString, Description: description}
}

func obj(description string, props ...Property) *Node {
	return &Node{Type: TypeObject, Description: description, Properties: props}
}

func prop(name string, n *Node) Property {
	return Property{Name: name, Node: n}
}

// Sermon returns the structure of a generated sermon. The surah name is
// only used in field guidance and may be empty.
func Sermon(surahName string) *Node {
	title := str("عنوان رئيسي جذاب للخطبة كلها.")
	title.NonEmpty = true

	message := obj("",
		prop("message", str("رسالة موجزة وقوية.")),
		prop("explanation", str("شرح موسع لكيفية تطبيق الرسالة عمليًا في حياة المسلم اليومية.")),
	)

	return obj("",
		prop("title", title),
		prop("verses", str(fmt.Sprintf("مرجع للآيات المعتمدة (مثال: '%s: ١-٥').", surahName))),
		prop("khutbah1", obj("",
			prop("title", str("عنوان للخطبة الأولى.")),
			prop("verses", str("النص الكامل للآيات القرآنية محور الخطبة، مع التشكيل الكامل.")),
			prop("tafsir", str("تفسير وشرح للآيات، معتمدًا على كتب التفسير الموثوقة مثل تفسير ابن كثير والطبري والسعدي.")),
			prop("reflections", str("تأملات إيمانية وعملية وعميقة جدًا وموسعة مستنبطة من الآيات.")),
			prop("messages", &Node{
				Type:        TypeArray,
				Description: "ثلاث رسائل إيمانية عملية وواضحة على الأقل.",
				Items:       message,
			}),
			prop("repentance", str("دعوة مؤثرة وقصيرة للتوبة والاستغفار في نهاية الخطبة الأولى.")),
		)),
		prop("khutbah2", obj("",
			prop("hadith", obj("",
				prop("text", str("النص الكامل للحديث مع التشكيل الكامل.")),
				prop("authenticity", str("درجة صحة الحديث (مثال: 'متفق عليه', 'صحيح البخاري', 'رواه مسلم').")),
			)),
			prop("hadithReflection", str("شرح وتأمل في الحديث وكيف يرتبط بالآيات وموضوع الخطبة.")),
			prop("dua", str("دعاء ختامي شامل ومؤثر وجامع.")),
		)),
	)
}
