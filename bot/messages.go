package bot

// msgID identifies one static UI string. All user-facing text is
// resolved against the per-language table at this boundary; the core
// pipeline only ever produces raw question text.
type msgID int

const (
	msgWelcome msgID = iota
	msgPendingApproval
	msgBanned
	msgNotAllowed
	msgCancelDone
	msgNoActiveQuiz
	msgFileTooLarge
	msgUnsupportedFile
	msgChooseContentLanguage
	msgChooseQuizLanguage
	msgNoPendingFile
	msgAnalyzing
	msgGenerating
	msgExtractionFailed
	msgGenerationEmpty
	msgQuizDone
	msgCorrectAnswer
	msgUnknownCommand
	msgAdminOnly
)

var messages = map[string]map[msgID]string{
	"ar": {
		msgWelcome: "أهلًا! أرسل ملف (PDF/DOCX/PPTX/TXT/صور) وسأحوّله لأسئلة قوية بالذكاء الاصطناعي.\n\n" +
			"الأوامر: /start /cancel",
		msgPendingApproval:       "تم تسجيلك كـ مستخدم جديد، في انتظار موافقة المدير.",
		msgBanned:                "عذرًا، تم حظرك من استخدام هذا البوت.",
		msgNotAllowed:            "عذرًا، لم يتم السماح لك باستخدام هذا البوت بعد.",
		msgCancelDone:            "تم إلغاء الاختبار الحالي ✅",
		msgNoActiveQuiz:          "لا يوجد اختبار جارٍ الآن.",
		msgFileTooLarge:          "الحجم كبير (%.1fMB). أرسل ملف ≤ %dMB.",
		msgUnsupportedFile:       "الرجاء إرسال PDF/DOCX/PPTX/TXT/صورة.",
		msgChooseContentLanguage: "اختر لغة محتوى الملف:",
		msgChooseQuizLanguage:    "اختر لغة الأسئلة:",
		msgNoPendingFile:         "لا يوجد ملف قيد المعالجة.",
		msgAnalyzing:             "جاري تحليل الملف وإعداده… ⏳",
		msgGenerating:            "جاري توليد أسئلة قوية بالذكاء الاصطناعي… ⏳",
		msgExtractionFailed:      "تعذر استخراج نص كافٍ حتى بعد OCR. جرّب ملفًا أوضح.",
		msgGenerationEmpty:       "تعذّر توليد أسئلة كافية. حاول ملفًا آخر.",
		msgQuizDone:              "انتهى الاختبار! نتيجتك: %d/%d ✅",
		msgCorrectAnswer:         "إجابة صحيحة",
		msgUnknownCommand:        "أمر غير معروف. استخدم /start للتعليمات.",
		msgAdminOnly:             "هذه الميزة للمدير فقط.",
	},
	"en": {
		msgWelcome: "Hi! Send a PDF/DOCX/PPTX/TXT/Image and I'll turn it into strong exam questions using AI.\n\n" +
			"Commands: /start /cancel",
		msgPendingApproval:       "You are registered as a new user, awaiting admin approval.",
		msgBanned:                "Sorry, you have been banned from using this bot.",
		msgNotAllowed:            "Sorry, you are not allowed to use this bot yet.",
		msgCancelDone:            "Current quiz canceled ✅",
		msgNoActiveQuiz:          "No active quiz.",
		msgFileTooLarge:          "File too large (%.1fMB). Max %dMB.",
		msgUnsupportedFile:       "Please send a PDF/DOCX/PPTX/TXT/Image.",
		msgChooseContentLanguage: "Choose the file content language:",
		msgChooseQuizLanguage:    "Choose the quiz language:",
		msgNoPendingFile:         "No pending file.",
		msgAnalyzing:             "Analyzing the file… ⏳",
		msgGenerating:            "Generating strong questions with AI… ⏳",
		msgExtractionFailed:      "Couldn't extract enough text (even with OCR). Try a clearer file.",
		msgGenerationEmpty:       "Failed to generate enough questions. Try another file.",
		msgQuizDone:              "Done! Your score: %d/%d ✅",
		msgCorrectAnswer:         "Correct",
		msgUnknownCommand:        "Unknown command. Use /start for instructions.",
		msgAdminOnly:             "This feature is admin-only.",
	},
}

// uiText resolves a message in the given language, falling back to
// English for unknown languages.
func uiText(lang string, id msgID) string {
	if table, ok := messages[lang]; ok {
		if s, ok := table[id]; ok {
			return s
		}
	}
	return messages["en"][id]
}
