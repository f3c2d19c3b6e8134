package core

// seedGoals is the built-in goal set of a mechanical engineer's life plan.
var seedGoals = []Goal{
	{
		ID:          "1",
		Title:       "Главный инженер проекта",
		Description: "Возглавить крупный инженерный проект по разработке нового механизма",
		Progress:    45,
		Category:    Career,
	},
	{
		ID:          "2",
		Title:       "Сертификация PMP",
		Description: "Получить международный сертификат Project Management Professional",
		Progress:    30,
		Category:    Career,
	},
	{
		ID:          "3",
		Title:       "Освоить CAD/CAM системы",
		Description: "Углубленное изучение SolidWorks и AutoCAD для 3D моделирования",
		Progress:    65,
		Category:    Education,
	},
	{
		ID:          "4",
		Title:       "Магистратура по машиностроению",
		Description: "Поступить в топовый вуз на программу Advanced Manufacturing",
		Progress:    20,
		Category:    Education,
	},
	{
		ID:          "5",
		Title:       "Здоровая спина",
		Description: "Регулярные упражнения и правильная осанка за рабочим столом",
		Progress:    70,
		Category:    Health,
	},
	{
		ID:          "6",
		Title:       "Спортивный режим",
		Description: "Тренировки 3 раза в неделю для поддержания физической формы",
		Progress:    55,
		Category:    Health,
	},
	{
		ID:          "7",
		Title:       "Финансовая подушка",
		Description: "Накопить резерв на 6 месяцев жизни для финансовой стабильности",
		Progress:    40,
		Category:    Finance,
	},
	{
		ID:          "8",
		Title:       "Инвестиционный портфель",
		Description: "Сформировать диверсифицированный портфель из акций и облигаций",
		Progress:    25,
		Category:    Finance,
	},
}

// SeedGoals returns a fresh copy of the built-in goals.
func SeedGoals() []Goal {
	out := make([]Goal, len(seedGoals))
	copy(out, seedGoals)
	return out
}
