package locale

// Strings is the label table for one language.
type Strings struct {
	// Composed message
	NewRequest   string
	EventDetails string
	Selections   string
	Name         string
	Email        string
	Phone        string
	EventType    string
	Date         string
	Location     string
	Notes        string
	Frame        string
	Rope         string
	Carpet       string
	Mount        string
	None         string

	// Event types
	Wedding    string
	Engagement string
	Birthday   string
	Corporate  string
	Other      string

	// Wizard chrome
	PremiumExperience string
	YourSelection     string
	MirrorFrame       string
	RedCarpetSetup    string
	PhotoMount        string
	PrevStep          string
	NextStep          string
	SubmitRequest     string
	SuccessTitle      string
	SuccessMessage    string
	StartOver         string
	CustomEventType   string
	NotesPlaceholder  string
	Searching         string
	Required          string
	FollowUs          string
}

// T returns the label table for lang, falling back to English.
func T(lang Language) Strings {
	if s, ok := tables[lang]; ok {
		return s
	}
	return tables[English]
}

var tables = map[Language]Strings{
	English: {
		NewRequest:   "New Booking Request",
		EventDetails: "Event Details",
		Selections:   "Selections",
		Name:         "Name",
		Email:        "Email",
		Phone:        "Phone",
		EventType:    "Event Type",
		Date:         "Date",
		Location:     "Location",
		Notes:        "Notes",
		Frame:        "Frame",
		Rope:         "Rope",
		Carpet:       "Carpet",
		Mount:        "Mount",
		None:         "None",

		Wedding:    "Wedding",
		Engagement: "Engagement",
		Birthday:   "Birthday",
		Corporate:  "Corporate",
		Other:      "Other",

		PremiumExperience: "Premium Photo Mirror Experience",
		YourSelection:     "Your Selection",
		MirrorFrame:       "Mirror Frame",
		RedCarpetSetup:    "Red Carpet Setup",
		PhotoMount:        "Photo Mount",
		PrevStep:          "Back",
		NextStep:          "Next",
		SubmitRequest:     "Send Request",
		SuccessTitle:      "Request Sent",
		SuccessMessage:    "Thank you! We received your request and will get back to you shortly.",
		StartOver:         "Start New Reservation",
		CustomEventType:   "Describe your event",
		NotesPlaceholder:  "Anything else we should know?",
		Searching:         "Searching…",
		Required:          "required",
		FollowUs:          "Follow us on Instagram",
	},
	Hebrew: {
		NewRequest:   "בקשת הזמנה חדשה",
		EventDetails: "פרטי האירוע",
		Selections:   "בחירות",
		Name:         "שם",
		Email:        "אימייל",
		Phone:        "טלפון",
		EventType:    "סוג האירוע",
		Date:         "תאריך",
		Location:     "מיקום",
		Notes:        "הערות",
		Frame:        "מסגרת",
		Rope:         "חבל",
		Carpet:       "שטיח",
		Mount:        "מעמד",
		None:         "ללא",

		Wedding:    "חתונה",
		Engagement: "אירוסין",
		Birthday:   "יום הולדת",
		Corporate:  "אירוע חברה",
		Other:      "אחר",

		PremiumExperience: "חוויית מראת צילום יוקרתית",
		YourSelection:     "הבחירה שלך",
		MirrorFrame:       "מסגרת המראה",
		RedCarpetSetup:    "מתחם שטיח אדום",
		PhotoMount:        "מעמד לתמונה",
		PrevStep:          "הקודם",
		NextStep:          "הבא",
		SubmitRequest:     "שליחת בקשה",
		SuccessTitle:      "הבקשה נשלחה",
		SuccessMessage:    "תודה! קיבלנו את הבקשה שלך ונחזור אליך בהקדם.",
		StartOver:         "הזמנה חדשה",
		CustomEventType:   "תארו את האירוע",
		NotesPlaceholder:  "משהו נוסף שכדאי שנדע?",
		Searching:         "מחפש…",
		Required:          "חובה",
		FollowUs:          "עקבו אחרינו באינסטגרם",
	},
	Arabic: {
		NewRequest:   "طلب حجز جديد",
		EventDetails: "تفاصيل المناسبة",
		Selections:   "الاختيارات",
		Name:         "الاسم",
		Email:        "البريد الإلكتروني",
		Phone:        "الهاتف",
		EventType:    "نوع المناسبة",
		Date:         "التاريخ",
		Location:     "الموقع",
		Notes:        "ملاحظات",
		Frame:        "الإطار",
		Rope:         "الحبل",
		Carpet:       "السجادة",
		Mount:        "الحامل",
		None:         "لا يوجد",

		Wedding:    "زفاف",
		Engagement: "خطوبة",
		Birthday:   "عيد ميلاد",
		Corporate:  "مناسبة شركة",
		Other:      "أخرى",

		PremiumExperience: "تجربة مرآة تصوير فاخرة",
		YourSelection:     "اختيارك",
		MirrorFrame:       "إطار المرآة",
		RedCarpetSetup:    "منطقة السجادة الحمراء",
		PhotoMount:        "حامل الصورة",
		PrevStep:          "السابق",
		NextStep:          "التالي",
		SubmitRequest:     "إرسال الطلب",
		SuccessTitle:      "تم إرسال الطلب",
		SuccessMessage:    "شكراً لك! استلمنا طلبك وسنعود إليك قريباً.",
		StartOver:         "حجز جديد",
		CustomEventType:   "صف مناسبتك",
		NotesPlaceholder:  "هل هناك شيء آخر يجب أن نعرفه؟",
		Searching:         "جارٍ البحث…",
		Required:          "مطلوب",
		FollowUs:          "تابعونا على إنستغرام",
	},
}
