package dashboard

import (
	"fmt"
	"strings"

	"lifegoals/internal/core"
)

// Locale holds every user-visible string of the dashboard page.
type Locale struct {
	Code          string
	Title         string
	Subtitle      string
	Tagline       string
	ProgressLabel string
	AllGoals      string
	ShowAll       string
	OverallTitle  string
	OverallNote   string
	Unavailable   string
	RateLimited   string

	// Category display names; an empty entry falls back to CategoryConfig.Name.
	CategoryNames map[core.Category]string
	// GoalNouns is the count noun printed after the goal count on each tile.
	// It is a fixed per-category table, not a number-agreement rule.
	GoalNouns map[core.Category]string
	Stages    map[core.Stage]string
}

var locales = map[string]Locale{
	"ru": {
		Code:          "ru",
		Title:         "Дерево жизненных целей",
		Subtitle:      "Инженер-механик",
		Tagline:       "Путь к профессиональному росту",
		ProgressLabel: "Прогресс",
		AllGoals:      "Все цели",
		ShowAll:       "Показать все",
		OverallTitle:  "Общий прогресс",
		OverallNote:   "пути к достижению всех целей пройдено",
		Unavailable:   "Не удалось загрузить цели. Попробуйте позже.",
		RateLimited:   "Слишком много запросов. Подождите минуту и обновите страницу.",
		CategoryNames: map[core.Category]string{
			core.Career:    "Карьера",
			core.Health:    "Здоровье",
			core.Education: "Образование",
			core.Finance:   "Финансы",
		},
		GoalNouns: map[core.Category]string{
			core.Career:    "целей",
			core.Health:    "цели",
			core.Education: "цели",
			core.Finance:   "целей",
		},
		Stages: map[core.Stage]string{
			core.StageInitial:    "Начальный этап",
			core.StageInProgress: "В процессе",
			core.StageActive:     "Активно развиваю",
		},
	},
	"en": {
		Code:          "en",
		Title:         "Tree of Life Goals",
		Subtitle:      "Mechanical engineer",
		Tagline:       "The path to professional growth",
		ProgressLabel: "Progress",
		AllGoals:      "All goals",
		ShowAll:       "Show all",
		OverallTitle:  "Overall progress",
		OverallNote:   "of the way to all goals covered",
		Unavailable:   "Goals could not be loaded. Please try again later.",
		RateLimited:   "Too many requests. Wait a minute and reload the page.",
		GoalNouns: map[core.Category]string{
			core.Career:    "goals",
			core.Health:    "goals",
			core.Education: "goals",
			core.Finance:   "goals",
		},
	},
}

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "ru"

// LookupLocale returns the locale registered under code.
func LookupLocale(code string) (Locale, error) {
	loc, ok := locales[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Locale{}, fmt.Errorf("unknown locale %q", code)
	}
	return loc, nil
}

// LocaleCodes lists the supported locale codes.
func LocaleCodes() []string {
	return []string{"ru", "en"}
}

// CategoryName returns the localized name of c.
func (l Locale) CategoryName(c core.Category) string {
	if name := l.CategoryNames[c]; name != "" {
		return name
	}
	return c.Config().Name
}

// GoalNoun returns the count noun printed next to the number of goals in c.
func (l Locale) GoalNoun(c core.Category) string {
	return l.GoalNouns[c]
}

// StageLabel returns the localized label of s.
func (l Locale) StageLabel(s core.Stage) string {
	if label := l.Stages[s]; label != "" {
		return label
	}
	return s.String()
}
