package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/DMH695/score/internal/apiclient"
	"github.com/DMH695/score/internal/console"
	"github.com/DMH695/score/internal/models"
	"github.com/joho/godotenv"
)

// scorectl — терминальная админка табло. Данные перезагружаются целиком
// после каждой успешной мутации: никакого оптимистичного обновления,
// последняя успешная загрузка просто замещает локальное состояние.
type app struct {
	api     *apiclient.Client
	session *console.Session
	reset   *console.ResetFlow
	in      *bufio.Scanner

	students  []models.StudentWithRank
	ranks     []models.Rank
	templates []models.ScoreTemplate
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Не удалось загрузить .env файл, используем переменные окружения")
	}

	api := apiclient.New(apiclient.DefaultBaseURL())
	a := &app{
		api:     api,
		session: console.NewSession(api, console.DefaultCredentialStore()),
		reset:   console.NewResetFlow(api),
		in:      bufio.NewScanner(os.Stdin),
	}

	ctx := context.Background()
	if ok, err := a.session.Restore(ctx); ok {
		fmt.Println("Сессия восстановлена по сохранённому паролю.")
	} else if err != nil {
		fmt.Println("Сохранённый пароль отклонён сервером, войдите заново.")
	}

	if err := a.reload(ctx); err != nil {
		fmt.Println("Ошибка загрузки данных:", errText(err))
	}

	fmt.Println("scorectl — табло баллов класса. Введите help для списка команд.")
	for {
		fmt.Print("> ")
		if !a.in.Scan() {
			return
		}
		line := strings.TrimSpace(a.in.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			return
		}
		a.dispatch(ctx, line)
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func (a *app) dispatch(ctx context.Context, line string) {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		a.printHelp()
	case "board":
		keyword := strings.Join(args, " ")
		fmt.Print(console.FormatBoard(console.FilterStudents(a.students, keyword)))
	case "student":
		a.showStudent(ctx, args)
	case "templates":
		for _, t := range a.templates {
			fmt.Printf("  [%d] %-30s %+d (%s)\n", t.ID, t.Name, t.Value, t.Category)
		}
	case "ranks":
		for _, r := range a.ranks {
			fmt.Printf("  [%d] %s %-16s от %d баллов\n", r.ID, r.Icon, r.Name, r.MinScore)
		}
	case "records":
		a.showRecords(ctx)
	case "pick":
		a.pick(ctx)
	case "login":
		a.login(ctx)
	case "logout":
		a.session.Logout()
		fmt.Println("Вы вышли из админки.")
	case "score", "apply", "undo", "stats", "export", "reset",
		"newstudent", "editstudent", "delstudent",
		"newtemplate", "edittemplate", "deltemplate",
		"newrank", "editrank", "delrank":
		if !a.session.LoggedIn() {
			fmt.Println("Сначала выполните login.")
			return
		}
		a.adminCommand(ctx, cmd, args)
	default:
		fmt.Println("Неизвестная команда, введите help.")
	}
}

func (a *app) printHelp() {
	fmt.Print(`Команды:
  board [фильтр]     — таблица лидеров (фильтр по имени/номеру)
  student <id>       — карточка ученика с историей
  templates / ranks  — шаблоны начислений и лестница рангов
  records            — журнал операций
  pick               — случайный ученик
  login / logout     — вход и выход из админки
  score <id> <дельта> <причина> [категория]  — начислить/списать баллы
  apply <id ученика> <id шаблона>            — применить шаблон
  undo <id записи>   — отменить операцию
  newstudent <номер> <имя>                   — добавить ученика
  editstudent <id> <номер> <имя>             — изменить номер и имя
  delstudent <id>                            — удалить ученика с историей
  newtemplate <значение> <категория> <название>       — добавить шаблон
  edittemplate <id> <значение> <категория> <название> — изменить шаблон
  deltemplate <id>                           — удалить шаблон
  newrank <порог> <название>                 — добавить ступень рангов
  editrank <id> <порог> [название]           — изменить ступень
  delrank <id>                               — удалить ступень
  stats              — статистика
  export <файл>      — выгрузка xlsx
  reset              — полный сброс баллов (три подтверждения)
  quit
`)
}

// reload перечитывает весь рабочий набор. Параллельность не нужна:
// это локальная утилита, три последовательных запроса дешевле гонок.
func (a *app) reload(ctx context.Context) error {
	students, err := a.api.Students(ctx)
	if err != nil {
		return err
	}
	ranks, err := a.api.Ranks(ctx)
	if err != nil {
		return err
	}
	templates, err := a.api.Templates(ctx)
	if err != nil {
		return err
	}
	a.students, a.ranks, a.templates = students, ranks, templates
	return nil
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}

func (a *app) login(ctx context.Context) {
	pw := a.prompt("Пароль администратора: ")
	if err := a.session.Login(ctx, pw); err != nil {
		fmt.Println("Вход не выполнен:", errText(err))
		return
	}
	fmt.Println("Вход выполнен.")
	if err := a.reload(ctx); err != nil {
		fmt.Println("Ошибка загрузки данных:", errText(err))
	}
}

func (a *app) showStudent(ctx context.Context, args []string) {
	if len(args) != 1 {
		fmt.Println("Использование: student <id>")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		fmt.Println("Некорректный id.")
		return
	}
	detail, err := a.api.Student(ctx, id)
	if err != nil {
		fmt.Println("Ошибка:", errText(err))
		return
	}
	fmt.Print(console.FormatDetail(detail))
}

func (a *app) showRecords(ctx context.Context) {
	page, err := a.api.Records(ctx, apiclient.RecordsQuery{Page: 1, PageSize: 20})
	if err != nil {
		fmt.Println("Ошибка:", errText(err))
		return
	}
	for _, r := range page.Data {
		name := ""
		if r.Student != nil {
			name = r.Student.Name
		}
		fmt.Printf("  [%d] %s  %-20s %+d  %s (%s)\n",
			r.ID, r.CreatedAt.Format("02.01 15:04"), name, r.Value, r.Reason, r.Category)
	}
	fmt.Printf("Всего записей: %d\n", page.Total)
}

func (a *app) pick(ctx context.Context) {
	// анимация отменяема: Ctrl+C контекста хватает, тикер освобождается внутри
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	picker := console.NewPicker(time.Now().UnixNano())
	winner, err := picker.Run(ctx, a.students, 100*time.Millisecond, func(s models.StudentWithRank) {
		fmt.Printf("\r  🎲 %-20s", s.Name)
	})
	if err != nil {
		fmt.Println("\nРулетка прервана:", errText(err))
		return
	}
	fmt.Printf("\r  🎉 Выбран: %s (№%s)\n", winner.Name, winner.StudentNo)
}

func (a *app) adminCommand(ctx context.Context, cmd string, args []string) {
	pw := a.session.Password()
	var err error
	mutated := false

	switch cmd {
	case "score":
		if len(args) < 3 {
			fmt.Println("Использование: score <id> <дельта> <причина> [категория]")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		value, convErr := strconv.Atoi(args[1])
		if convErr != nil || value == 0 {
			fmt.Println("Дельта должна быть ненулевым числом.")
			return
		}
		category := ""
		if len(args) > 3 {
			category = args[3]
		}
		_, newScore, mErr := a.api.ModifyScore(ctx, pw, apiclient.ScoreInput{
			StudentID: id, Value: value, Reason: args[2], Category: category,
		})
		if mErr == nil {
			fmt.Printf("Готово, новый счёт: %d\n", newScore)
		}
		err, mutated = mErr, true
	case "apply":
		err, mutated = a.applyTemplate(ctx, args), true
	case "undo":
		if len(args) != 1 {
			fmt.Println("Использование: undo <id записи>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		err, mutated = a.api.UndoScoreRecord(ctx, pw, id), true
	case "newstudent":
		if len(args) < 2 {
			fmt.Println("Использование: newstudent <номер> <имя>")
			return
		}
		_, cErr := a.api.CreateStudent(ctx, pw, apiclient.StudentInput{
			StudentNo: args[0], Name: strings.Join(args[1:], " "),
		})
		err, mutated = cErr, true
	case "editstudent":
		if len(args) < 3 {
			fmt.Println("Использование: editstudent <id> <номер> <имя>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		_, uErr := a.api.UpdateStudent(ctx, pw, id, apiclient.StudentInput{
			StudentNo: args[1], Name: strings.Join(args[2:], " "),
		})
		err, mutated = uErr, true
	case "delstudent":
		if len(args) != 1 {
			fmt.Println("Использование: delstudent <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		err, mutated = a.api.DeleteStudent(ctx, pw, id), true
	case "newtemplate":
		err, mutated = a.saveTemplate(ctx, 0, args), true
	case "edittemplate":
		if len(args) < 1 {
			fmt.Println("Использование: edittemplate <id> <значение> <категория> <название>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		err, mutated = a.saveTemplate(ctx, id, args[1:]), true
	case "deltemplate":
		if len(args) != 1 {
			fmt.Println("Использование: deltemplate <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		err, mutated = a.api.DeleteTemplate(ctx, pw, id), true
	case "newrank":
		if len(args) < 2 {
			fmt.Println("Использование: newrank <порог> <название>")
			return
		}
		minScore, convErr := strconv.Atoi(args[0])
		if convErr != nil {
			fmt.Println("Порог должен быть числом.")
			return
		}
		_, rErr := a.api.CreateRank(ctx, pw, apiclient.RankInput{
			Name: strings.Join(args[1:], " "), MinScore: minScore, SortOrder: len(a.ranks) + 1,
		})
		err, mutated = rErr, true
	case "editrank":
		err, mutated = a.editRank(ctx, args), true
	case "delrank":
		if len(args) != 1 {
			fmt.Println("Использование: delrank <id>")
			return
		}
		id, _ := strconv.ParseInt(args[0], 10, 64)
		err, mutated = a.api.DeleteRank(ctx, pw, id), true
	case "stats":
		st, sErr := a.api.Statistics(ctx, pw)
		if sErr == nil {
			fmt.Printf("Учеников: %d, записей: %d\n", st.TotalStudents, st.TotalRecords)
			for _, cs := range st.CategoryStats {
				fmt.Printf("  %-20s %4d операций, итог %+d\n", cs.Category, cs.Count, cs.Total)
			}
			return
		}
		err = sErr
	case "export":
		if len(args) != 1 {
			fmt.Println("Использование: export <файл.xlsx>")
			return
		}
		data, eErr := a.api.ExportWorkbook(ctx, pw)
		if eErr == nil {
			eErr = os.WriteFile(args[0], data, 0o644)
		}
		if eErr == nil {
			fmt.Println("Сохранено в", args[0])
			return
		}
		err = eErr
	case "reset":
		a.runResetFlow(ctx)
		return
	}

	if err != nil {
		fmt.Println("Ошибка:", errText(err))
		return
	}
	// мутация прошла — полная перезагрузка рабочего набора
	if mutated {
		if err := a.reload(ctx); err != nil {
			fmt.Println("Ошибка перезагрузки данных:", errText(err))
		}
	}
}

// saveTemplate создаёт (id == 0) или обновляет шаблон.
// args: <значение> <категория> <название...>.
func (a *app) saveTemplate(ctx context.Context, id int64, args []string) error {
	if len(args) < 3 {
		fmt.Println("Нужно указать: <значение> <категория> <название>")
		return nil
	}
	value, convErr := strconv.Atoi(args[0])
	if convErr != nil || value == 0 {
		fmt.Println("Значение должно быть ненулевым числом.")
		return nil
	}
	in := apiclient.TemplateInput{
		Name: strings.Join(args[2:], " "), Value: value, Category: args[1],
	}
	var err error
	if id == 0 {
		_, err = a.api.CreateTemplate(ctx, a.session.Password(), in)
	} else {
		_, err = a.api.UpdateTemplate(ctx, a.session.Password(), id, in)
	}
	return err
}

// editRank меняет порог (и при желании название) ступени; цвет, иконка и
// порядок сортировки берутся из загруженной лестницы, чтобы не затереть их.
func (a *app) editRank(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Println("Использование: editrank <id> <порог> [название]")
		return nil
	}
	id, _ := strconv.ParseInt(args[0], 10, 64)
	minScore, convErr := strconv.Atoi(args[1])
	if convErr != nil {
		fmt.Println("Порог должен быть числом.")
		return nil
	}

	var current *models.Rank
	for i := range a.ranks {
		if a.ranks[i].ID == id {
			current = &a.ranks[i]
		}
	}
	if current == nil {
		fmt.Println("Ранг не найден, см. ranks.")
		return nil
	}

	in := apiclient.RankInput{
		Name:      current.Name,
		MinScore:  minScore,
		Color:     current.Color,
		Icon:      current.Icon,
		SortOrder: current.SortOrder,
	}
	if len(args) > 2 {
		in.Name = strings.Join(args[2:], " ")
	}
	_, err := a.api.UpdateRank(ctx, a.session.Password(), id, in)
	return err
}

func (a *app) applyTemplate(ctx context.Context, args []string) error {
	if len(args) != 2 {
		fmt.Println("Использование: apply <id ученика> <id шаблона>")
		return nil
	}
	studentID, _ := strconv.ParseInt(args[0], 10, 64)
	templateID, _ := strconv.ParseInt(args[1], 10, 64)

	for _, t := range a.templates {
		if t.ID == templateID {
			_, newScore, err := a.api.ModifyScore(ctx, a.session.Password(), apiclient.ScoreInput{
				StudentID: studentID, Value: t.Value, Reason: t.Name, Category: t.Category,
			})
			if err == nil {
				fmt.Printf("«%s» применён, новый счёт: %d\n", t.Name, newScore)
			}
			return err
		}
	}
	fmt.Println("Шаблон не найден, см. templates.")
	return nil
}

// runResetFlow проводит через все три шага диалога сброса.
// Любой пустой ввод — отмена.
func (a *app) runResetFlow(ctx context.Context) {
	a.reset.Open()
	defer a.reset.Cancel()

	for a.reset.State() == console.ResetPassword {
		pw := a.prompt("Пароль сброса (пусто — отмена): ")
		if pw == "" {
			fmt.Println("Сброс отменён.")
			return
		}
		if err := a.reset.SubmitPassword(ctx, pw); err != nil {
			fmt.Println("Ошибка:", a.reset.LastErr())
		}
	}

	if a.prompt("⚠️  Будут удалены ВСЕ баллы и ВСЯ история. Продолжить? (да/нет): ") != "да" {
		fmt.Println("Сброс отменён.")
		return
	}
	if err := a.reset.Acknowledge(); err != nil {
		fmt.Println("Ошибка:", errText(err))
		return
	}

	for a.reset.State() == console.ResetConfirm2 {
		if a.prompt("Последнее подтверждение: введите СБРОСИТЬ: ") != "СБРОСИТЬ" {
			fmt.Println("Сброс отменён.")
			return
		}
		if err := a.reset.Confirm(ctx, a.session.Password()); err != nil {
			// диалог остаётся открытым на финальном шаге
			fmt.Println("Сброс не выполнен:", a.reset.LastErr())
			if a.prompt("Повторить? (да/нет): ") != "да" {
				return
			}
			continue
		}
	}

	fmt.Println("Все баллы сброшены.")
	if err := a.reload(ctx); err != nil {
		fmt.Println("Ошибка перезагрузки данных:", errText(err))
	}
}
