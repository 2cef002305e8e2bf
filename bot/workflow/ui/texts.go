package ui

// Texts shared by several workflows.
const (
	TextBackendFailure = "Не получилось связаться с сервером 😔\nПопробуй ещё раз чуть позже"
	TextAnythingElse   = "Могу ли я помочь чем нибудь ещё? Посмотри комманды"
	TextSearchPrompt   = "Введи слово, которое ты ищешь 🔎"
	TextNoDetails      = "Подробностей об этом слове пока нет"

	BtnBack   = "🔙 Назад"
	BtnFinish = "🛑 Закончить"
)
