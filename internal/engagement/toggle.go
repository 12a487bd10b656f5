package engagement

// Переключатель "нравится" с двумя состояниями. Отдельных глаголов
// like/unlike нет - каждый вызов инвертирует текущее состояние.
// Нулевое значение bool трактуется как Unliked, поэтому документы,
// созданные до появления атрибута liked, работают без миграции.

// toggleFlag инвертирует флаг и возвращает новое состояние.
// Вариант для комментариев и ответов: счетчика нет, флаг - все состояние.
func toggleFlag(liked *bool) bool {
	*liked = !*liked
	return *liked
}

// toggleCounter - вариант для статьи: вместе с флагом ведется счетчик лайков.
// При снятии лайка счетчик не уходит ниже нуля.
func toggleCounter(liked *bool, likes *int) bool {
	if *liked {
		*liked = false
		if *likes > 0 {
			*likes--
		}
		return false
	}
	*liked = true
	*likes++
	return true
}

// toggleMessage собирает человекочитаемое сообщение результата
func toggleMessage(entity string, liked bool) string {
	if liked {
		return entity + " liked!"
	}
	return entity + " unliked!"
}
