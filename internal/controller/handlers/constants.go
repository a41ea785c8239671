package handlers

// Ограничения полей события
const (
	EventTitleMaxLength       = 200
	EventDescriptionMaxLength = 1000
)

// Пропуск необязательного шага диалога
const skipInput = "-"
