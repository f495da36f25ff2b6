// Package bot adapts the form engine to the Telegram transport. It owns
// the command handlers, converts engine messages into telebot sends, and
// runs the completion pipeline (persist, export, summary, broadcast).
package bot

import (
	"context"

	tele "gopkg.in/telebot.v4"
	"log/slog"

	"github.com/Awindblowsggggg/Telegrambot/core/logger"
	coretelegram "github.com/Awindblowsggggg/Telegrambot/core/telegram"
	"github.com/Awindblowsggggg/Telegrambot/core/telegram/commands"
	tghelpers "github.com/Awindblowsggggg/Telegrambot/core/telegram/helpers"
	"github.com/Awindblowsggggg/Telegrambot/core/telegram/keyboard"
	"github.com/Awindblowsggggg/Telegrambot/internal/form"
	"github.com/Awindblowsggggg/Telegrambot/internal/record"
	"github.com/Awindblowsggggg/Telegrambot/internal/report"
)

const (
	saveFailedText      = "⚠️ The record could not be saved. Please try submitting the form again."
	unknownSubmitter    = "Unknown"
	alreadyRunningText  = "A form is already in progress. Answer the pending question or send /cancel."
	nothingToCancelText = "No form in progress."
)

// Bot glues the form engine, the record store, and the CSV export to
// Telegram chats. One instance serves every conversation.
type Bot struct {
	engine   *form.Engine
	sessions *form.Sessions
	store    record.Store
	exporter *record.CSVExporter

	// broadcastChatID receives a copy of each completed summary; 0 disables it.
	broadcastChatID int64
}

// New builds the bot service. The exporter may be nil to disable CSV output.
func New(engine *form.Engine, store record.Store, exporter *record.CSVExporter, broadcastChatID int64) *Bot {
	return &Bot{
		engine:          engine,
		sessions:        form.NewSessions(),
		store:           store,
		exporter:        exporter,
		broadcastChatID: broadcastChatID,
	}
}

// InProgress reports whether the chat has an active form. It satisfies
// the text router's FSM interface.
func (b *Bot) InProgress(chatID int64) bool {
	return b.sessions.Active(chatID)
}

// Register wires the bot commands into the shared registry.
func (b *Bot) Register(reg *coretelegram.Registry) {
	reg.RegisterCommand("/start", commands.Command{
		Handler:     b.StartHandler,
		Description: "Begin a new vehicle condition form",
	})
	reg.RegisterCommand("/cancel", commands.Command{
		Handler:     b.CancelHandler,
		Description: "Abandon the form in progress",
	})
	reg.RegisterCommand("/status", commands.Command{
		Handler:     b.StatusHandler,
		Description: "Show open and closed conditions per vehicle",
	})
}

// StartHandler opens a new form session, or re-shows the pending
// question when the chat already has one in progress.
func (b *Bot) StartHandler(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	ctx := tghelpers.WithHandler(c, "start")

	if sess, ok := b.sessions.Get(chat.ID); ok {
		logger.Info(ctx, "service.form", "form.already_active",
			slog.String("status", "skip"),
			slog.String("step", string(sess.Step)),
		)
		if err := tghelpers.SendText(c, alreadyRunningText); err != nil {
			return err
		}
		return b.send(c, b.engine.Prompt(sess))
	}

	sess, greeting := b.engine.Begin(chat.ID, submitterName(c))
	b.sessions.Put(sess)
	logger.Info(ctx, "service.form", "form.started",
		slog.String("status", "ok"),
	)
	return b.send(c, greeting)
}

// CancelHandler abandons the active form, if any.
func (b *Bot) CancelHandler(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	ctx := tghelpers.WithHandler(c, "cancel")

	sess, ok := b.sessions.Get(chat.ID)
	if !ok {
		return tghelpers.SendText(c, nothingToCancelText)
	}
	msg := b.engine.Cancel(sess)
	b.sessions.Remove(chat.ID)
	logger.Info(ctx, "service.form", "form.cancelled",
		slog.String("status", "ok"),
		slog.String("vehicle_id", sess.Draft.VehicleID),
	)
	return b.send(c, msg)
}

// StatusHandler renders the open/closed overview from the store.
func (b *Bot) StatusHandler(c tele.Context) error {
	ctx := tghelpers.WithHandler(c, "status")

	latest, err := b.store.AllLatestByVehicle(ctx)
	if err != nil {
		logger.Error(ctx, "service.report", "status.load",
			slog.String("status", "fail"),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "⚠️ Could not load the status overview. Try again later.")
	}

	open := 0
	for _, rec := range latest {
		if rec.Kind == record.KindStart {
			open++
		}
	}
	logger.Info(ctx, "service.report", "status.rendered",
		slog.String("status", "ok"),
		slog.Int("pending", open),
		slog.Int("closed", len(latest)-open),
	)
	return tghelpers.SendText(c, report.Status(latest))
}

// ManagerHandler feeds free-form text into the active session. It
// satisfies the text router's FSM interface; the router only calls it
// when InProgress is true.
func (b *Bot) ManagerHandler(c tele.Context) error {
	chat := c.Chat()
	if chat == nil {
		return nil
	}
	sess, ok := b.sessions.Get(chat.ID)
	if !ok {
		return nil
	}
	ctx := tghelpers.WithHandler(c, "fsm")

	res, err := b.engine.Handle(ctx, sess, c.Text())
	if err != nil {
		// Lookup fault: the step is held, the operator can retry the answer.
		logger.Error(ctx, "service.form", "form.step",
			slog.String("status", "fail"),
			slog.String("step", string(sess.Step)),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, "⚠️ Something went wrong checking the records. Please send your answer again.")
	}

	if sess.Step.Terminal() {
		b.sessions.Remove(chat.ID)
	}

	for _, msg := range res.Messages {
		if err := b.send(c, msg); err != nil {
			return err
		}
	}

	if res.Record != nil {
		return b.complete(ctx, c, *res.Record)
	}
	return nil
}

// complete runs the post-form pipeline. Persist and export failures
// surface to the operator and suppress the summary; a broadcast failure
// is logged and otherwise ignored.
func (b *Bot) complete(ctx context.Context, c tele.Context, rec record.Record) error {
	if err := b.store.Persist(ctx, rec); err != nil {
		logger.Error(ctx, "records", "store.persist",
			slog.String("status", "fail"),
			slog.String("vehicle_id", rec.VehicleID),
			slog.String("err", err.Error()),
		)
		return tghelpers.SendText(c, saveFailedText)
	}

	if b.exporter != nil {
		if err := b.exporter.Append(ctx, rec); err != nil {
			logger.Error(ctx, "records", "export.append",
				slog.String("status", "fail"),
				slog.String("vehicle_id", rec.VehicleID),
				slog.String("err", err.Error()),
			)
			return tghelpers.SendText(c, saveFailedText)
		}
	}

	summary := report.Summary(rec)
	if err := tghelpers.SendText(c, summary, &tele.SendOptions{ReplyMarkup: keyboard.RemoveKeyboard()}); err != nil {
		return err
	}

	if b.broadcastChatID != 0 {
		if _, err := c.Bot().Send(&tele.Chat{ID: b.broadcastChatID}, summary); err != nil {
			logger.Warn(ctx, "service.report", "summary.broadcast",
				slog.String("status", "fail"),
				slog.Int64("chat_id", b.broadcastChatID),
				slog.String("err", err.Error()),
			)
		}
	}

	logger.Info(ctx, "records", "record.saved",
		slog.String("status", "ok"),
		slog.String("vehicle_id", rec.VehicleID),
		slog.String("kind", string(rec.Kind)),
	)
	return nil
}

// send converts one engine message into a telebot send.
func (b *Bot) send(c tele.Context, msg form.Message) error {
	switch {
	case len(msg.Choices) > 0:
		return tghelpers.SendWithMarkup(c, msg.Text, keyboard.ReplyButtons(msg.Choices...))
	case msg.RemoveChoices:
		return tghelpers.SendWithMarkup(c, msg.Text, keyboard.RemoveKeyboard())
	default:
		return tghelpers.SendText(c, msg.Text)
	}
}

func submitterName(c tele.Context) string {
	if u := c.Sender(); u != nil && u.FirstName != "" {
		return u.FirstName
	}
	return unknownSubmitter
}
