package wizard

import (
	"github.com/mark3labs/mirrorbook/internal/catalog"
	"github.com/mark3labs/mirrorbook/internal/locale"
)

// Step indexes
const (
	StepFrame = iota
	StepRopeCarpet
	StepMount
	StepContact
)

// Step describes one stage of the wizard.
type Step struct {
	Index      int
	Key        string
	Title      locale.Text
	Subtitle   locale.Text
	Categories []catalog.Category // categories picked on this step; empty for the contact form
}

var steps = []Step{
	{
		Index: StepFrame,
		Key:   "frame",
		Title: locale.Text{
			locale.English: "Mirror Frame",
			locale.Hebrew:  "מסגרת המראה",
			locale.Arabic:  "إطار المرآة",
		},
		Subtitle: locale.Text{
			locale.English: "Choose the frame that matches your event",
			locale.Hebrew:  "בחרו את המסגרת שמתאימה לאירוע שלכם",
			locale.Arabic:  "اختر الإطار المناسب لمناسبتك",
		},
		Categories: []catalog.Category{catalog.Frame},
	},
	{
		Index: StepRopeCarpet,
		Key:   "rope_carpet",
		Title: locale.Text{
			locale.English: "Red Carpet Setup",
			locale.Hebrew:  "מתחם שטיח אדום",
			locale.Arabic:  "منطقة السجادة الحمراء",
		},
		Subtitle: locale.Text{
			locale.English: "Pick the rope and carpet for the entrance",
			locale.Hebrew:  "בחרו חבל ושטיח לכניסה",
			locale.Arabic:  "اختر الحبل والسجادة للمدخل",
		},
		Categories: []catalog.Category{catalog.Rope, catalog.Carpet},
	},
	{
		Index: StepMount,
		Key:   "mount",
		Title: locale.Text{
			locale.English: "Photo Mount",
			locale.Hebrew:  "מעמד לתמונה",
			locale.Arabic:  "حامل الصورة",
		},
		Subtitle: locale.Text{
			locale.English: "How should your guests take their prints home?",
			locale.Hebrew:  "איך האורחים ייקחו את התמונות הביתה?",
			locale.Arabic:  "كيف سيأخذ ضيوفك صورهم إلى المنزل؟",
		},
		Categories: []catalog.Category{catalog.Mount},
	},
	{
		Index: StepContact,
		Key:   "contact",
		Title: locale.Text{
			locale.English: "Event Details",
			locale.Hebrew:  "פרטי האירוע",
			locale.Arabic:  "تفاصيل المناسبة",
		},
		Subtitle: locale.Text{
			locale.English: "Tell us where and when",
			locale.Hebrew:  "ספרו לנו איפה ומתי",
			locale.Arabic:  "أخبرنا أين ومتى",
		},
	},
}

// Steps returns the fixed step sequence.
func Steps() []Step {
	return append([]Step(nil), steps...)
}

// StepCount is the number of wizard steps.
func StepCount() int { return len(steps) }
