package bot

// Command tokens matched against the entire message text.
const (
	cmdStart  = "/start"
	cmdStop   = "/stop"
	cmdShutUp = "/shut-up"
	cmdStatus = "/status"
	cmdHelp   = "/help"
)

// Confirmation templates. These go through the reply styler when one is
// configured; the literal text is the fallback.
const (
	replyActivated       = "Бот активирован и будет отвечать в этой теме."
	replyDeactivated     = "Бот деактивирован и больше не будет отвечать в этой теме."
	replyNotActivated    = "Бот не активирован. Используйте /start в нужной теме."
	replyActiveHere      = "Бот активирован и участвует в теме."
	replyActiveElsewhere = "Бот активирован, но не участвует в этой теме. Используйте /start в нужной теме."
	replyWrongPlace      = "Это не место для дискуссий."
	replyNoText          = "В сообщении нет текста. Задайте вопрос текстом."
	replyAskFailed       = "Извините, не удалось получить ответ. Попробуйте задать вопрос ещё раз."
	replySaveFailed      = "Не удалось сохранить состояние бота. Попробуйте ещё раз."
	replyPhotoIgnored    = "Image received and ignored!"
)

// replyHelp is static usage text, never styled.
const replyHelp = `Используйте /start в нужной теме, чтобы активировать бот.
Любое текстовое сообщение в этой теме считается вопросом.
Используйте /stop, чтобы деактивировать бот.
Используйте /status, чтобы проверить статус бота.
Бот отвечает только в теме, где он был активирован.`
