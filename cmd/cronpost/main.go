package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cronpost/cronpost-go/cronpost"
	"github.com/cronpost/cronpost-go/internal/biz"
	"github.com/cronpost/cronpost-go/internal/biz/domain"
	"github.com/cronpost/cronpost-go/internal/conf"
	"github.com/cronpost/cronpost-go/internal/data"
	"github.com/cronpost/cronpost-go/internal/service"
)

// app holds everything a command handler needs.
type app struct {
	cfg      *conf.Config
	log      *logrus.Entry
	repos    *data.Repositories
	usecases *biz.Usecases
	catalog  *domain.Catalog
	errs     domain.ErrorCatalog
}

func main() {
	// A missing .env file is fine; the environment may carry everything.
	_ = godotenv.Load()

	var a app
	root := &cobra.Command{
		Use:           "cronpost",
		Short:         "Compose, schedule and keep watch over CronPost messages",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.repos != nil {
				_ = a.repos.Close()
			}
		},
	}

	root.AddCommand(
		newStatusCmd(&a),
		newCheckinCmd(&a),
		newActivateCmd(&a),
		newReactivateCmd(&a),
		newStopCmd(&a),
		newIMCmd(&a),
		newFMCmd(&a),
		newSCMCmd(&a),
		newDraftCmd(&a),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, a.translate(err))
		os.Exit(1)
	}
}

func (a *app) init() error {
	a.cfg = conf.LoadFromEnv()
	if err := a.cfg.Validate(); err != nil {
		return err
	}

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if a.cfg.Debug {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
	a.log = logrus.NewEntry(logger)

	a.catalog = a.cfg.Catalog.ToCatalog()
	a.errs = a.cfg.Catalog.ToErrorCatalog()

	client := cronpost.NewClient(a.cfg.API.BaseURL, a.cfg.API.Token, cronpost.WithLogger(a.log))
	repos, err := data.NewRepositories(client, a.cfg.Draft.DBPath)
	if err != nil {
		return err
	}
	a.repos = repos
	a.usecases = biz.NewUsecases(repos, a.log)
	return nil
}

func (a *app) translate(err error) string {
	return domain.TranslateError(err, a.errs)
}

func newStatusCmd(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the check-in state and what is scheduled",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !watch {
				state, err := a.usecases.Lifecycle.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				a.printState(state)
				return nil
			}
			return a.watchStatus(cmd.Context())
		},
	}
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "keep the countdown ticking on screen")
	return cmd
}

func (a *app) printState(state *domain.FullState) {
	fmt.Printf("Status: %s\n", statusLabel(state.IM.Status))
	if state.IM.CLC.Trigger != "" {
		fmt.Printf("Schedule: %s\n", domain.Describe(state.IM.CLC, a.catalog))
	}
	if state.IM.CountdownUntil != nil {
		remaining := time.Until(*state.IM.CountdownUntil)
		fmt.Printf("Next deadline: %s (%s)\n", service.FormatPrecise(remaining), service.FormatRelative(remaining))
	}
	if kind, ok := domain.CheckSkipWarning(state.IM.CLC); ok {
		fmt.Printf("Note: %s\n", domain.WarningText(kind, a.catalog))
	}
	if len(state.FollowUps) > 0 {
		fmt.Println("Follow-up messages:")
		for _, fm := range state.FollowUps {
			fmt.Printf("  %s  [%s]  %s\n", fm.ID, fm.Status, domain.Describe(fm.Schedule, a.catalog))
		}
	}
}

func (a *app) watchStatus(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	interval := time.Duration(a.cfg.RefreshSeconds) * time.Second
	var watcher *service.StateWatcher
	countdown := service.NewCountdown(interval,
		func(tk service.Tick) {
			fmt.Printf("\r%s  (%s)   ", tk.Precise, tk.Relative)
		},
		func() {
			fmt.Println()
			watcher.OnExpire()
		},
	)
	watcher = service.NewStateWatcher(a.usecases.Lifecycle, countdown,
		func(state *domain.FullState) { a.printState(state) }, a.log)

	if _, err := watcher.Refresh(ctx); err != nil {
		return err
	}
	countdown.Start()
	defer countdown.Stop()

	<-ctx.Done()
	fmt.Println()
	return nil
}

func newCheckinCmd(a *app) *cobra.Command {
	var pin string
	cmd := &cobra.Command{
		Use:   "checkin",
		Short: "Confirm you are there while the reply window is open",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.CheckIn(cmd.Context(), pin); err != nil {
				return err
			}
			fmt.Println("Checked in. The loop restarts from now.")
			return nil
		},
	}
	cmd.Flags().StringVar(&pin, "pin", "", "4-digit PIN, when your account requires one")
	return cmd
}

func newActivateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "activate",
		Short: "Start the check-in loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.Activate(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Check-in loop started.")
			return nil
		},
	}
}

func newReactivateCmd(a *app) *cobra.Command {
	var at string
	cmd := &cobra.Command{
		Use:   "reactivate",
		Short: "Restart a finished one-time message at a new moment",
		RunE: func(cmd *cobra.Command, args []string) error {
			when, err := time.Parse("2006-01-02T15:04", at)
			if err != nil {
				return fmt.Errorf("parse --at (want 2006-01-02T15:04): %w", err)
			}
			if err := a.usecases.Lifecycle.Reactivate(cmd.Context(), when); err != nil {
				return err
			}
			fmt.Println("Rescheduled and reactivated.")
			return nil
		},
	}
	cmd.Flags().StringVar(&at, "at", "", "new send moment, local time")
	_ = cmd.MarkFlagRequired("at")
	return cmd
}

func newStopCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Halt the check-in loop",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.Stop(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Check-in loop stopped.")
			return nil
		},
	}
}

// composeFlags maps one flag per schedule picker field plus the message
// body. Only the flags belonging to the chosen trigger are read.
type composeFlags struct {
	recipients []string
	subject    string
	content    string
	method     string
	mode       string
	trigger    string
	interval   int
	weekday    string
	month      int
	day        int
	lunarMonth int
	lunarDay   int
	leapMonth  bool
	daysAfter  int
	sendTime   string
	specificAt string
	repeat     int
	wctValue   int
	wctUnit    string
	asDraft    bool
}

func (f *composeFlags) register(cmd *cobra.Command, withWCT bool) {
	fl := cmd.Flags()
	fl.StringSliceVar(&f.recipients, "to", nil, "recipient addresses")
	fl.StringVar(&f.subject, "subject", "", "message subject")
	fl.StringVar(&f.content, "content", "", "message content")
	fl.StringVar(&f.method, "sending-method", "cronpost_email", "in_app_messaging|cronpost_email|user_email")
	fl.StringVar(&f.mode, "mode", "loop", "loop|unloop")
	fl.StringVar(&f.trigger, "trigger", "", "every_n_days|day_of_week|date_of_month|date_of_year|lunar_date_of_year|specific_date|days_after_im")
	fl.IntVar(&f.interval, "interval", 0, "days between occurrences (every_n_days)")
	fl.StringVar(&f.weekday, "weekday", "", "weekday name (day_of_week)")
	fl.IntVar(&f.month, "month", 0, "month 1-12 (date_of_year)")
	fl.IntVar(&f.day, "day", 0, "day of month")
	fl.IntVar(&f.lunarMonth, "lunar-month", 0, "lunar month 1-12")
	fl.IntVar(&f.lunarDay, "lunar-day", 0, "lunar day 1-30")
	fl.BoolVar(&f.leapMonth, "leap-month", false, "the lunar leap month")
	fl.IntVar(&f.daysAfter, "days-after", 0, "days after the initial message (follow-ups)")
	fl.StringVar(&f.sendTime, "time", "09:00", "send time HH:mm")
	fl.StringVar(&f.specificAt, "at", "", "one-time moment 2006-01-02T15:04")
	fl.IntVar(&f.repeat, "repeat", 0, "how many occurrences (0 = default, once)")
	fl.BoolVar(&f.asDraft, "draft", false, "submit as a server-side draft")
	if withWCT {
		fl.IntVar(&f.wctValue, "wct", 24, "reply window length")
		fl.StringVar(&f.wctUnit, "wct-unit", "hours", "minutes|hours")
	}
}

func (f *composeFlags) picker() (domain.PickerState, error) {
	p := domain.PickerState{
		Trigger:     domain.TriggerType(f.trigger),
		Interval:    f.interval,
		Month:       f.month,
		Day:         f.day,
		LunarMonth:  f.lunarMonth,
		LunarDay:    f.lunarDay,
		IsLeapMonth: f.leapMonth,
		DaysAfter:   f.daysAfter,
		RepeatCount: f.repeat,
	}
	if f.sendTime != "" {
		tod, err := domain.ParseTimeOfDay(f.sendTime)
		if err != nil {
			return p, err
		}
		p.SendTime = tod
	}
	if f.weekday != "" {
		wd, err := parseWeekday(f.weekday)
		if err != nil {
			return p, err
		}
		p.Weekday = wd
	}
	if f.specificAt != "" {
		at, err := time.Parse("2006-01-02T15:04", f.specificAt)
		if err != nil {
			return p, fmt.Errorf("parse --at (want 2006-01-02T15:04): %w", err)
		}
		p.SpecificAt = at
	}
	return p, nil
}

func parseWeekday(name string) (time.Weekday, error) {
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		if strings.EqualFold(wd.String(), name) {
			return wd, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", name)
}

// buildDraft assembles a draft from the compose flags and encodes the
// schedule, printing any skip warning inline.
func (f *composeFlags) buildDraft(a *app, family domain.ScheduleFamily, remoteID string) (*domain.MessageDraft, error) {
	draft := a.usecases.Draft.New(family, domain.ScheduleMode(f.mode))
	draft.RemoteID = remoteID
	draft.IsDraft = f.asDraft
	draft.Message = domain.MessageCore{
		Recipients:    f.recipients,
		Subject:       f.subject,
		Content:       f.content,
		SendingMethod: domain.SendingMethod(f.method),
	}
	if family == domain.FamilyIM {
		draft.WCT = domain.WCTDuration{Value: f.wctValue, Unit: domain.WCTUnit(f.wctUnit)}
	}

	if f.trigger == "" && f.specificAt == "" {
		// No schedule picked yet; a saved draft may fill it in later.
		return draft, nil
	}
	picker, err := f.picker()
	if err != nil {
		return nil, err
	}
	kind, warned, err := a.usecases.Draft.ApplySchedule(draft, picker)
	if err != nil {
		return nil, err
	}
	if warned {
		fmt.Printf("Note: %s\n", domain.WarningText(kind, a.catalog))
	}
	return draft, nil
}

func (a *app) submitAndReport(ctx context.Context, draft *domain.MessageDraft) error {
	result, err := a.usecases.Submit.Submit(ctx, draft)
	if err != nil {
		return err
	}
	switch {
	case result.RemoteID != "" && result.Created:
		fmt.Printf("Created %s: %s\n", result.RemoteID, domain.Describe(draft.Schedule, a.catalog))
	case result.Created:
		fmt.Printf("Created: %s\n", domain.Describe(draft.Schedule, a.catalog))
	default:
		fmt.Printf("Updated: %s\n", domain.Describe(draft.Schedule, a.catalog))
	}
	return nil
}

func newIMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "im",
		Short: "Manage the initial message",
	}

	var createFlags composeFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Set up the initial message and its check-in schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := createFlags.buildDraft(a, domain.FamilyIM, "")
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	createFlags.register(create, true)

	var updateFlags composeFlags
	update := &cobra.Command{
		Use:   "update",
		Short: "Rewrite the initial message and schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.EnsureEditable(cmd.Context()); err != nil {
				return err
			}
			// The initial message is a singleton; any non-empty remote
			// id routes the submit to an update.
			draft, err := updateFlags.buildDraft(a, domain.FamilyIM, "im")
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	updateFlags.register(update, true)

	cmd.AddCommand(create, update, newIMDeleteCmd(a), newMethodCmd(a))
	return cmd
}

func newIMDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the initial message (must be stopped first)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.Delete(cmd.Context()); err != nil {
				return err
			}
			fmt.Println("Initial message deleted.")
			return nil
		},
	}
}

func newMethodCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "method <in_app_messaging|cronpost_email|user_email>",
		Short:     "Change how the initial message is delivered",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"in_app_messaging", "cronpost_email", "user_email"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.usecases.Lifecycle.EnsureEditable(cmd.Context()); err != nil {
				return err
			}
			if err := a.usecases.Submit.ChangeIMMethod(cmd.Context(), domain.SendingMethod(args[0])); err != nil {
				return err
			}
			fmt.Printf("Sending method is now %s.\n", args[0])
			fmt.Println("Review the message under the new method with: cronpost im update")
			return nil
		},
	}
}

func newFMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fm",
		Short: "Manage follow-up messages",
	}

	var createFlags composeFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a follow-up message",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := createFlags.buildDraft(a, domain.FamilyFM, "")
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	createFlags.register(create, false)

	var updateFlags composeFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite a follow-up message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := updateFlags.buildDraft(a, domain.FamilyFM, args[0])
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	updateFlags.register(update, false)

	cmd.AddCommand(
		create,
		update,
		&cobra.Command{
			Use:   "list",
			Short: "List follow-up messages",
			RunE: func(cmd *cobra.Command, args []string) error {
				state, err := a.usecases.Lifecycle.Refresh(cmd.Context())
				if err != nil {
					return err
				}
				if len(state.FollowUps) == 0 {
					fmt.Println("No follow-up messages.")
					return nil
				}
				for _, fm := range state.FollowUps {
					fmt.Printf("%s  [%s]  %s\n", fm.ID, fm.Status, domain.Describe(fm.Schedule, a.catalog))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "cancel <id>",
			Short: "Cancel a pending follow-up message",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.repos.FM.Cancel(cmd.Context(), args[0])
			},
		},
		&cobra.Command{
			Use:   "delete <id>",
			Short: "Delete a follow-up message",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.repos.FM.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func newSCMCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scm",
		Short: "Manage scheduled cron messages",
	}

	var createFlags composeFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Schedule a cron message",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := createFlags.buildDraft(a, domain.FamilySCM, "")
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	createFlags.register(create, false)

	var updateFlags composeFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Rewrite a cron message",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := updateFlags.buildDraft(a, domain.FamilySCM, args[0])
			if err != nil {
				return err
			}
			return a.submitAndReport(cmd.Context(), draft)
		},
	}
	updateFlags.register(update, false)

	cmd.AddCommand(
		create,
		update,
		&cobra.Command{
			Use:   "list",
			Short: "List cron messages",
			RunE: func(cmd *cobra.Command, args []string) error {
				entries, err := a.repos.Scm.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(entries) == 0 {
					fmt.Println("No cron messages.")
					return nil
				}
				for _, e := range entries {
					fmt.Printf("%s  [%s]  %s\n", e.ID, e.Status, domain.Describe(e.Schedule, a.catalog))
					if kind, ok := domain.CheckSkipWarning(e.Schedule); ok {
						fmt.Printf("    note: %s\n", domain.WarningText(kind, a.catalog))
					}
				}
				return nil
			},
		},
		scmActionCmd(a, "pause", "Pause a cron message", a.scmPause),
		scmActionCmd(a, "resume", "Resume a paused cron message", a.scmResume),
		scmActionCmd(a, "cancel", "Cancel a cron message", a.scmCancel),
		scmActionCmd(a, "delete", "Delete a cron message", a.scmDelete),
	)
	return cmd
}

func scmActionCmd(a *app, verb, short string, fn func(context.Context, string) error) *cobra.Command {
	return &cobra.Command{
		Use:   verb + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return fn(cmd.Context(), args[0])
		},
	}
}

func (a *app) scmPause(ctx context.Context, id string) error  { return a.repos.Scm.Pause(ctx, id) }
func (a *app) scmResume(ctx context.Context, id string) error { return a.repos.Scm.Resume(ctx, id) }
func (a *app) scmCancel(ctx context.Context, id string) error { return a.repos.Scm.Cancel(ctx, id) }
func (a *app) scmDelete(ctx context.Context, id string) error { return a.repos.Scm.Delete(ctx, id) }

func newDraftCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage local drafts",
	}

	var family string
	var saveFlags composeFlags
	save := &cobra.Command{
		Use:   "save",
		Short: "Compose a message and keep it locally without submitting",
		RunE: func(cmd *cobra.Command, args []string) error {
			draft, err := saveFlags.buildDraft(a, domain.ScheduleFamily(family), "")
			if err != nil {
				return err
			}
			draft.IsDraft = true
			if err := a.usecases.Draft.Save(cmd.Context(), draft); err != nil {
				return err
			}
			fmt.Printf("Saved draft %s.\n", draft.LocalID)
			return nil
		},
	}
	save.Flags().StringVar(&family, "family", "scm", "im|fm|scm")
	saveFlags.register(save, true)

	cmd.AddCommand(
		save,
		&cobra.Command{
			Use:   "list",
			Short: "List saved drafts",
			RunE: func(cmd *cobra.Command, args []string) error {
				drafts, err := a.usecases.Draft.List(cmd.Context())
				if err != nil {
					return err
				}
				if len(drafts) == 0 {
					fmt.Println("No drafts.")
					return nil
				}
				for _, d := range drafts {
					summary := "(no schedule yet)"
					if d.Schedule.Trigger != "" {
						summary = domain.Describe(d.Schedule, a.catalog)
					}
					fmt.Printf("%s  [%s/%s]  %s\n", d.LocalID, d.Family, d.Mode, summary)
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "submit <local-id>",
			Short: "Submit a saved draft",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				draft, err := a.usecases.Draft.Get(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				if draft == nil {
					return fmt.Errorf("no draft with id %s", args[0])
				}
				result, err := a.usecases.Submit.Submit(cmd.Context(), draft)
				if err != nil {
					return err
				}
				if result.Created {
					fmt.Printf("Created %s.\n", result.RemoteID)
				} else {
					fmt.Printf("Updated %s.\n", result.RemoteID)
				}
				if result.HasWarning {
					fmt.Printf("Note: %s\n", domain.WarningText(result.Warning, a.catalog))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:     "delete <local-id>",
			Aliases: []string{"rm"},
			Short:   "Discard a draft",
			Args:    cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.usecases.Draft.Delete(cmd.Context(), args[0])
			},
		},
	)
	return cmd
}

func statusLabel(s domain.IMStatus) string {
	switch s {
	case domain.IMStatusInactive:
		return "inactive"
	case domain.IMStatusAwaitingWindow:
		return "active, waiting for the next check-in prompt"
	case domain.IMStatusWithinWindow:
		return "reply window open, check in now"
	case domain.IMStatusFinalNotSent:
		return "finished, final message not sent"
	}
	return string(s)
}
