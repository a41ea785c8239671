package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/household_bot/internal/calendar"
	"github.com/Freeeeeet/household_bot/internal/controller/common/formatting"
	"github.com/Freeeeeet/household_bot/internal/model"
	"github.com/Freeeeeet/household_bot/internal/render"
)

func main() {
	monthFlag := flag.String("month", "", "месяц в формате ГГГГ-ММ (по умолчанию текущий)")
	out := flag.String("out", "month.png", "файл для сохранения")
	flag.Parse()

	now := time.Now()
	today := model.DateOf(now)
	view := calendar.NewView(today)
	if *monthFlag != "" {
		month, err := calendar.ParseMonth(*monthFlag)
		if err != nil {
			fmt.Printf("Неверный месяц: %v\n", err)
			os.Exit(1)
		}
		view.Month = month
	}

	// Тестовые события в первые дни месяца
	first := view.Month.First().Time(time.Local)
	at := func(day, hour, minute int) time.Time {
		return first.AddDate(0, 0, day-1).Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
	}
	endAt := func(t time.Time) *time.Time { return &t }

	events := []model.Event{
		{ID: 1, Title: "Стоматолог", StartTime: at(3, 14, 30), EndTime: endAt(at(3, 15, 30))},
		{ID: 2, Title: "Замена фильтра", StartTime: at(5, 9, 0)},
		{ID: 3, Title: "Родительское собрание", StartTime: at(5, 18, 0), EndTime: endAt(at(5, 19, 0))},
		{ID: 4, Title: "Прогулка", StartTime: at(5, 19, 30)},
		{ID: 5, Title: "Кино", StartTime: at(5, 21, 0)},
		{ID: 6, Title: "Без времени"},
		{ID: 7, Title: "Уборка", StartTime: at(12, 10, 0), EndTime: endAt(at(12, 12, 0))},
	}

	grid := calendar.NewBuilder(time.Local).BuildView(view, events, today)
	title := formatting.MonthTitle(view.Month.Year, view.Month.Month)

	imageData, err := render.MonthImage(grid, title)
	if err != nil {
		fmt.Printf("Ошибка генерации изображения: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*out, imageData, 0644); err != nil {
		fmt.Printf("Ошибка сохранения файла: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Изображение сохранено в %s\n", *out)
	fmt.Printf("📅 %s: %s - %s, недель: %d\n", title, grid.Start(), grid.End(), len(grid.Weeks()))
}
