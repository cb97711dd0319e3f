package bot

// User-facing strings. The bot speaks Russian to its tutors.
const (
	msgStartRegistered = "С возвращением, %s!\n\nДоступные команды:\n/add_student — добавить ученика\n/list_students — список учеников\n/delete_student — удалить ученика\n/profile — ваш профиль\n/help — справка"
	msgStartNew        = "Привет! Я бот для репетиторов: веду список учеников в вашей Google-таблице.\n\nЧтобы начать, зарегистрируйтесь командой /register."

	msgHelp = "Команды:\n/register — привязать Google-таблицу\n/profile — ваш профиль\n/add_student — добавить ученика\n/list_students — список учеников\n/delete_student — удалить ученика\n/cancel — прервать текущий диалог\n/health — состояние бота"

	msgNotRegistered = "Вы ещё не зарегистрированы. Используйте /register."

	msgRegisterAskName       = "Как вас зовут? (2–100 символов: буквы, цифры, пробелы, дефисы)"
	msgRegisterAskSheet      = "%s, пришлите ссылку на вашу Google-таблицу или её ID.\n\nНе забудьте дать доступ на редактирование сервисному аккаунту бота."
	msgRegisterInvalidName   = "Имя не подходит. Допустимы буквы, цифры, пробелы, дефисы и апострофы, длина 2–100 символов. Попробуйте ещё раз."
	msgRegisterInvalidSheet  = "Не похоже на ссылку или ID Google-таблицы. Пришлите ссылку вида https://docs.google.com/spreadsheets/d/... или сам ID."
	msgRegisterProcessing    = "Проверяю доступ к таблице..."
	msgRegisterSheetNotFound = "Таблица %s не найдена или недоступна. Проверьте ссылку и доступ сервисного аккаунта, затем пришлите её ещё раз."
	msgRegisterSuccess       = "Готово, %s! Таблица привязана, нужные листы созданы.\n\nТеперь можно добавить первого ученика: /add_student"
	msgRegisterAlready       = "Вы уже зарегистрированы как %s. Используйте /profile."
	msgRegisterCancelled     = "Регистрация отменена."

	msgProfile = "Ваш профиль\n\nИмя: %s\nТаблица: %s\nЗарегистрирован: %s\nОбновлён: %s"

	msgAddPromptParent = "Имя родителя?"
	msgAddPromptChild  = "Имя ученика?"
	msgAddPromptCost   = "Стоимость занятия?"
	msgAddSuccess      = "Ученик добавлен:\n%s / %s — %s"
	msgAddDuplicate    = "Такой ученик уже есть: %s / %s. Ничего не изменил."
	msgAddCancelled    = "Добавление отменено."

	msgListEmpty  = "Учеников пока нет. Добавьте первого: /add_student"
	msgListHeader = "Ваши ученики:\n"
	msgListItem   = "%d. %s / %s — %s\n"

	msgDeletePromptParent = "Имя родителя удаляемого ученика?"
	msgDeletePromptChild  = "Имя ученика?"
	msgDeleteConfirm      = "Удалить ученика %s / %s?\n\n/confirm — да, удалить\n/cancel — отмена"
	msgDeleteSuccess      = "Ученик удалён: %s / %s"
	msgDeleteNotFound     = "Ученик %s / %s не найден."
	msgDeleteCancelled    = "Удаление отменено."

	msgInvalidInput     = "Пустой ввод. Попробуйте ещё раз."
	msgNothingToStop    = "Сейчас нечего отменять."
	msgNothingToConfirm = "Сейчас нечего подтверждать."
	msgUnknownCommand   = "Не знаю такую команду. /help покажет список."
	msgInternalError    = "Что-то пошло не так: %v"

	msgHealth = "Бот работает.\nВремя работы: %s\nФайл реестра: %s"
)
