package i18n

var labels = map[Lang]map[string]string{
	Russian: {
		"shopTitle":         "Наша Кондитерская",
		"cart":              "Корзина",
		"addToCart":         "В корзину",
		"checkout":          "Оформить заказ",
		"total":             "Итого",
		"myOrders":          "Мои заказы",
		"orderHistory":      "История заказов",
		"repeatOrder":       "Повторить заказ",
		"all":               "Все",
		"cartEmpty":         "Корзина пуста",
		"noOrders":          "У вас пока нет заказов",
		"checkoutTitle":     "Оформление заказа",
		"name":              "Имя",
		"phone":             "Телефон",
		"comment":           "Комментарий",
		"commentHint":       "Укажите способ получения и другие детали",
		"yourOrder":         "Ваш заказ:",
		"submitOrder":       "Отправить заказ",
		"fillRequired":      "Пожалуйста, заполните имя и телефон",
		"orderSuccess":      "Спасибо за заказ!\n\nМы получили ваш заказ и скоро свяжемся с вами.",
		"orderFailed":       "Ошибка при отправке заказа. Попробуйте ещё раз.",
		"paymentInfo":       "Реквизиты для оплаты отправлены вам в личные сообщения бота.",
		"paymentNote":       "После оформления заказа мы отправим вам реквизиты для оплаты",
		"hello":             "Привет",
		"loading":           "Загрузка...",
		"status.new":        "Новый",
		"status.processing": "В работе",
		"status.completed":  "Выполнен",
		"status.cancelled":  "Отменён",
	},
	Kazakh: {
		"shopTitle":         "Біздің кондитерлік",
		"cart":              "Себет",
		"addToCart":         "Себетке",
		"checkout":          "Тапсырыс беру",
		"total":             "Барлығы",
		"myOrders":          "Менің тапсырыстарым",
		"orderHistory":      "Тапсырыстар тарихы",
		"repeatOrder":       "Тапсырысты қайталау",
		"all":               "Барлығы",
		"cartEmpty":         "Себет бос",
		"noOrders":          "Сізде әлі тапсырыстар жоқ",
		"checkoutTitle":     "Тапсырысты рәсімдеу",
		"name":              "Аты",
		"phone":             "Телефон",
		"comment":           "Түсініктеме",
		"commentHint":       "Алу әдісін және басқа мәліметтерді көрсетіңіз",
		"yourOrder":         "Сіздің тапсырысыңыз:",
		"submitOrder":       "Тапсырыс жіберу",
		"fillRequired":      "Атыңызды және телефонды толтырыңыз",
		"orderSuccess":      "Тапсырысыңызға рахмет!\n\nТапсырысыңызды алдық, жақын арада хабарласамыз.",
		"orderFailed":       "Тапсырысты жіберу кезінде қате. Қайталап көріңіз.",
		"paymentInfo":       "Төлем деректемелері ботқа жеке хабарларда жіберілді.",
		"paymentNote":       "Тапсырысты рәсімдегеннен кейін төлеу үшін деректемелерді жібереміз",
		"hello":             "Сәлем",
		"loading":           "Жүктелуде...",
		"status.new":        "Жаңа",
		"status.processing": "Орындалуда",
		"status.completed":  "Орындалды",
		"status.cancelled":  "Жойылды",
	},
}

// Label returns the UI string for key, falling back to the default language and then
// to the key itself.
func Label(lang Lang, key string) string {
	if v, ok := labels[lang][key]; ok {
		return v
	}
	if v, ok := labels[Default][key]; ok {
		return v
	}
	return key
}

// StatusLabel returns the display name of an order status.
func StatusLabel(lang Lang, status string) string {
	return Label(lang, "status."+status)
}

// Labels returns a copy of the full label set for lang.
func Labels(lang Lang) map[string]string {
	out := make(map[string]string, len(labels[Default]))
	for k := range labels[Default] {
		out[k] = Label(lang, k)
	}
	return out
}
