package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"periolifts/fitness-client/internal/backend"
	"periolifts/fitness-client/internal/backend/appwrite"
	"periolifts/fitness-client/internal/backend/pocketbase"
	"periolifts/fitness-client/internal/calendar"
	"periolifts/fitness-client/internal/config"
	"periolifts/fitness-client/internal/controller"
	"periolifts/fitness-client/internal/domain"
	"periolifts/fitness-client/internal/logging"
	"periolifts/fitness-client/internal/reminder"
	"periolifts/fitness-client/internal/service"
	"periolifts/fitness-client/internal/session"
	"periolifts/fitness-client/internal/settings"
)

const usage = `periolifts <command> [flags]

Commands:
  login      -email -password        authenticate against the backend
  register   -email -password -name  create an account
  workouts   [-search]               list workout templates
  exercises  [-search -muscle]       list the exercise library
  plans                              list workout plans
  history    [-workout]              list finished workouts
  today                              show this month's schedule
  track      -workout <id>           run a workout interactively
  remind                             run the reminder daemon (Ctrl-C to stop)
  settings   [-metric=bool -rest=N]  show or change local preferences
`

// app bundles everything main wires together.
type app struct {
	cfg      config.Config
	client   backend.Client
	auth     service.AuthService
	workouts service.WorkoutService
	exercise service.ExerciseService
	plans    service.PlanService
	sessions service.SessionService
	history  service.HistoryService
	prefs    *settings.Store
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logging.Setup(logging.SetupParams{
		Level:      cfg.Log.Level,
		FormatJSON: cfg.Log.JSON,
		FileName:   cfg.Log.File,
	})

	client, err := buildClient(cfg.Backend)
	if err != nil {
		log.Fatalf("backend: %v", err)
	}
	prefs, err := settings.Open(".")
	if err != nil {
		log.Fatalf("open settings: %v", err)
	}

	a := &app{
		cfg:      cfg,
		client:   client,
		auth:     service.NewAuthService(client),
		workouts: service.NewWorkoutService(client),
		exercise: service.NewExerciseService(client),
		plans:    service.NewPlanService(client),
		sessions: service.NewSessionService(client),
		history:  service.NewHistoryService(client),
		prefs:    prefs,
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Fatalf("%s: %v", os.Args[1], err)
	}
}

// buildClient selects the backend implementation at composition time.
func buildClient(cfg config.BackendConfig) (backend.Client, error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	store := backend.NewAuthStore()

	switch strings.ToLower(cfg.Provider) {
	case "pocketbase", "":
		return pocketbase.NewClient(cfg.URL, httpClient, store), nil
	case "appwrite":
		return appwrite.NewClient(cfg.URL, cfg.Project, cfg.Database, httpClient, store), nil
	default:
		return nil, fmt.Errorf("unknown backend provider %q", cfg.Provider)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.cmdLogin(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "workouts":
		return a.cmdWorkouts(ctx, args)
	case "exercises":
		return a.cmdExercises(ctx, args)
	case "plans":
		return a.cmdPlans(ctx)
	case "history":
		return a.cmdHistory(ctx, args)
	case "today":
		return a.cmdToday(ctx)
	case "track":
		return a.cmdTrack(ctx, args)
	case "remind":
		return a.cmdRemind(ctx)
	case "settings":
		return a.cmdSettings(args)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	_ = fs.Parse(args)

	user, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Printf("logged in as %s (%s)\n", user.Name, user.Email)
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	name := fs.String("name", "", "display name")
	_ = fs.Parse(args)

	user, err := a.auth.Register(ctx, *email, *password, *name)
	if err != nil {
		return err
	}
	fmt.Printf("registered %s, now log in\n", user.Email)
	return nil
}

func (a *app) cmdWorkouts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("workouts", flag.ExitOnError)
	search := fs.String("search", "", "filter by name")
	_ = fs.Parse(args)

	list := controller.NewWorkoutList(a.workouts, domain.WorkoutFilter{Search: *search}, a.cfg.Backend.PageSize)
	if err := list.Initialize(ctx); err != nil {
		return err
	}
	for _, w := range list.State().Items {
		fmt.Printf("%s  %-30s %d exercises, %d sets\n", w.ID, w.Name, len(w.Exercises), w.TotalSets())
	}
	return nil
}

func (a *app) cmdExercises(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("exercises", flag.ExitOnError)
	search := fs.String("search", "", "filter by name")
	muscle := fs.String("muscle", "", "filter by muscle group")
	_ = fs.Parse(args)

	list := controller.NewExerciseList(a.exercise,
		domain.ExerciseFilter{Search: *search, MuscleGroup: *muscle}, a.cfg.Backend.PageSize)
	if err := list.Initialize(ctx); err != nil {
		return err
	}
	for _, e := range list.State().Items {
		fmt.Printf("%s  %-30s %s\n", e.ID, e.Name, e.MuscleGroup)
	}
	return nil
}

func (a *app) cmdPlans(ctx context.Context) error {
	list := controller.NewPlanList(a.plans, domain.PlanFilter{}, a.cfg.Backend.PageSize)
	if err := list.Initialize(ctx); err != nil {
		return err
	}
	for _, p := range list.State().Items {
		marker := " "
		if p.IsActive {
			marker = "*"
		}
		fmt.Printf("%s %s  %-30s %d training days\n", marker, p.ID, p.Name, p.TrainingDays())
	}
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	workoutID := fs.String("workout", "", "filter by workout id")
	_ = fs.Parse(args)

	metric := a.prefs.MetricUnits()
	list := controller.NewHistoryList(a.history, domain.HistoryFilter{WorkoutID: *workoutID}, a.cfg.Backend.PageSize)
	if err := list.Initialize(ctx); err != nil {
		return err
	}
	for _, h := range list.State().Items {
		fmt.Printf("%s  %-30s %s  %s volume\n",
			h.PerformedAt.Format("2006-01-02"), h.WorkoutName,
			(time.Duration(h.DurationSeconds) * time.Second).String(),
			domain.FormatWeight(h.TotalVolumeKg, metric))
	}
	return nil
}

func (a *app) cmdToday(ctx context.Context) error {
	plan, err := a.plans.Active(ctx)
	if err != nil {
		return err
	}
	if plan == nil {
		fmt.Println("no active plan")
		return nil
	}

	now := time.Now()
	history, err := a.history.List(ctx, domain.HistoryFilter{
		From: now.AddDate(0, 0, -31),
	}, 1, service.MaxPerPage)
	if err != nil {
		return err
	}

	names := a.workoutNames(ctx, plan)
	weeks := calendar.MonthGrid(now.Year(), now.Month(), plan, history, names, now)

	fmt.Printf("%s — plan %q\n", now.Format("January 2006"), plan.Name)
	fmt.Println("Mo Tu We Th Fr Sa Su")
	for _, week := range weeks {
		for _, day := range week {
			switch {
			case !day.InMonth:
				fmt.Print("   ")
			case day.Completed:
				fmt.Printf("%2d✓", day.Date.Day())
			case day.WorkoutID != "":
				fmt.Printf("%2d•", day.Date.Day())
			default:
				fmt.Printf("%2d ", day.Date.Day())
			}
		}
		fmt.Println()
	}

	if next := calendar.NextTrainingDay(*plan, now); !next.IsZero() {
		workout := names[plan.WorkoutFor(next.Weekday())]
		fmt.Printf("next: %s on %s\n", workout, next.Format("Monday, Jan 2"))
	}
	return nil
}

func (a *app) cmdTrack(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("track", flag.ExitOnError)
	workoutID := fs.String("workout", "", "workout id to run")
	_ = fs.Parse(args)

	workout, err := a.workouts.Get(ctx, *workoutID)
	if err != nil {
		return err
	}
	persisted, err := a.sessions.Start(ctx, *workout)
	if err != nil {
		return err
	}

	restOverride := time.Duration(a.prefs.RestTimerSeconds()) * time.Second
	timer := session.NewRestTimer(restOverride, func() {
		fmt.Println("\nrest over, back to work")
	})
	tracker, err := session.NewTracker(*workout, timer)
	if err != nil {
		return err
	}

	metric := a.prefs.MetricUnits()
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("tracking %q — enter: complete set, s: skip exercise, q: finish early\n", workout.Name)

	for !tracker.Finished() {
		_, setIdx := tracker.Current()
		ex := tracker.CurrentExercise()
		fmt.Printf("[%3.0f%%] %s — set %d/%d (%d reps @ %s) > ",
			tracker.Progress()*100, ex.Name, setIdx+1, ex.Sets, ex.Reps,
			domain.FormatWeight(ex.WeightKg, metric))

		line, err := reader.ReadString('\n')
		if err != nil {
			tracker.Finish()
			break
		}
		switch strings.TrimSpace(line) {
		case "s":
			_ = tracker.SkipExercise()
		case "q":
			tracker.Finish()
		default:
			_ = tracker.CompleteSet(ex.Reps, ex.WeightKg)
			if timer.Active() {
				fmt.Printf("rest %s\n", timer.Remaining().Round(time.Second))
			}
		}
	}

	// Persist the finished session and the history summary.
	if _, err := a.sessions.Update(ctx, tracker.Snapshot(*persisted)); err != nil {
		return err
	}
	entry := tracker.HistoryEntry()
	if _, err := a.history.Create(ctx, entry); err != nil {
		return err
	}
	fmt.Printf("done: %d sets, %s volume\n", entry.CompletedSets,
		domain.FormatWeight(entry.TotalVolumeKg, metric))
	return nil
}

func (a *app) cmdRemind(ctx context.Context) error {
	plan, err := a.plans.Active(ctx)
	if err != nil {
		return err
	}
	if plan == nil {
		return fmt.Errorf("no active plan to remind about")
	}

	scheduler := reminder.NewScheduler(func(message string) {
		fmt.Println(message)
	})
	names := a.workoutNames(ctx, plan)
	if err := scheduler.SchedulePlan(*plan, a.cfg.Reminder.Hour, a.cfg.Reminder.Minute, names); err != nil {
		return err
	}
	defer scheduler.Stop()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("reminder daemon stopping")
	return nil
}

func (a *app) cmdSettings(args []string) error {
	fs := flag.NewFlagSet("settings", flag.ExitOnError)
	metric := fs.Bool("metric", a.prefs.MetricUnits(), "display weights in kg")
	rest := fs.Int("rest", a.prefs.RestTimerSeconds(), "rest timer override in seconds, 0 for per-exercise")
	_ = fs.Parse(args)

	if err := a.prefs.SetMetricUnits(*metric); err != nil {
		return err
	}
	if err := a.prefs.SetRestTimerSeconds(*rest); err != nil {
		return err
	}
	fmt.Printf("metric units: %v\nrest timer override: %ds\n",
		a.prefs.MetricUnits(), a.prefs.RestTimerSeconds())
	return nil
}

// workoutNames resolves the plan's scheduled workout ids to display names.
// Best effort: an unresolvable id just shows as the id.
func (a *app) workoutNames(ctx context.Context, plan *domain.WorkoutPlan) map[string]string {
	names := make(map[string]string)
	for _, workoutID := range plan.Schedule {
		if workoutID == "" {
			continue
		}
		if _, ok := names[workoutID]; ok {
			continue
		}
		workout, err := a.workouts.Get(ctx, workoutID)
		if err != nil {
			log.Warnf("resolve workout %s: %v", workoutID, err)
			names[workoutID] = workoutID
			continue
		}
		names[workoutID] = workout.Name
	}
	return names
}
