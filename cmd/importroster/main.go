package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/DMH695/score/internal/apiclient"
	"github.com/joho/godotenv"
)

// importroster — разовый импорт списка класса из CSV (номер;имя)
// через пакетный эндпоинт админки.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	var (
		file     = flag.String("file", "roster.csv", "CSV со списком: student_no,name")
		password = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "пароль администратора")
	)
	flag.Parse()

	if *password == "" {
		log.Fatal("не задан пароль администратора (-password или ADMIN_PASSWORD)")
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("не удалось открыть %s: %v", *file, err)
	}
	defer func() { _ = f.Close() }()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		log.Fatalf("ошибка чтения CSV: %v", err)
	}

	students := make([]apiclient.StudentInput, 0, len(rows))
	for i, row := range rows {
		if len(row) < 2 {
			log.Fatalf("строка %d: ожидаются две колонки (student_no,name)", i+1)
		}
		students = append(students, apiclient.StudentInput{StudentNo: row[0], Name: row[1]})
	}
	if len(students) == 0 {
		log.Fatal("файл пуст")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	api := apiclient.New(apiclient.DefaultBaseURL())
	created, err := api.BatchCreateStudents(ctx, *password, students)
	if err != nil {
		log.Fatalf("импорт не удался: %v", err)
	}
	fmt.Printf("Импортировано учеников: %d\n", len(created))
}
