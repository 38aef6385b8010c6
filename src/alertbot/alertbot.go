package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"
	"github.com/civiguard/civiguard/src/api/data"
	"github.com/civiguard/civiguard/src/api/notify"
	"github.com/civiguard/civiguard/src/api/routing"
	"github.com/civiguard/civiguard/src/api/types"
	"gorm.io/gorm"
)

// AlertBot relays critical cases to Discord: one message per case in the
// channel of the role that owns the category, plus the tagged alert that
// the gateway maintains in the central alert channel.
type AlertBot struct {
	session      *discordgo.Session
	db           *gorm.DB
	channels     map[routing.AgentRole]string
	alertChannel string
}

func NewAlertBot(token string, db *gorm.DB) (*AlertBot, error) {
	dg, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, err
	}

	bot := &AlertBot{
		session:  dg,
		db:       db,
		channels: make(map[routing.AgentRole]string),
	}
	bot.loadChannelConfig()

	dg.AddHandler(bot.handleReady)
	dg.Identify.Intents = discordgo.IntentsGuilds | discordgo.IntentsGuildMessages

	return bot, nil
}

// loadChannelConfig reads per-role channels from the settings table
// ("channel_<role>") and the shared alert channel ("alert_channel_id"),
// with env fallbacks.
func (b *AlertBot) loadChannelConfig() {
	b.alertChannel = data.GetSetting("alert_channel_id")
	if b.alertChannel == "" {
		b.alertChannel = os.Getenv("ALERT_CHANNEL_ID")
	}

	for _, role := range routing.Roles() {
		if id := data.GetSetting("channel_" + string(role)); id != "" {
			b.channels[role] = id
		}
	}

	if len(b.channels) == 0 {
		log.Println("No per-role channels configured, routing everything to the alert channel")
	}
}

func (b *AlertBot) Start() error {
	return b.session.Open()
}

func (b *AlertBot) Stop() error {
	return b.session.Close()
}

func (b *AlertBot) handleReady(s *discordgo.Session, event *discordgo.Ready) {
	log.Printf("Alert bot logged in as %s", event.User.Username)
}

// handleCase is the bot's Notifier subscription: route the case to the
// owning role's channel and journal the delivery.
func (b *AlertBot) handleCase(cc notify.CriticalCase) {
	role := routing.RoleForCategory(routing.ReportCategory(cc.Category))

	channelID, ok := b.channels[role]
	if !ok {
		channelID = b.alertChannel
	}
	if channelID == "" {
		return
	}

	profile, _ := routing.ProfileForRole(role)
	content := fmt.Sprintf("**%s** — %s\nCatégorie: %s | Lieu: %s | Dossier %s",
		cc.Title, profile.Label, cc.Category, cc.Location, cc.ID)
	if cc.AIScore != nil {
		content += fmt.Sprintf(" | Score IA: %.2f", *cc.AIScore)
	}

	msg, err := b.session.ChannelMessageSend(channelID, content)
	if err != nil {
		log.Printf("Failed to post critical case %s: %v", cc.ID, err)
		return
	}

	entry := types.AlertLog{
		CaseID:    cc.ID,
		Category:  cc.Category,
		Role:      string(role),
		ChannelID: channelID,
		MessageID: msg.ID,
	}
	if err := b.db.Create(&entry).Error; err != nil {
		log.Printf("Failed to journal alert for case %s: %v", cc.ID, err)
	}
}

func main() {
	token := os.Getenv("DISCORD_TOKEN")
	if token == "" {
		log.Fatal("DISCORD_TOKEN not set")
	}

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		log.Fatal("MYSQL_DSN not set")
	}
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://127.0.0.1:6379/0"
	}

	db := data.MustMySQL(mysqlDSN)
	if err := db.AutoMigrate(&types.Setting{}, &types.AlertLog{}); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	if err := data.LoadSettings(db); err != nil {
		log.Printf("settings: %v", err)
	}

	rdb := data.MustRedis(redisURL)

	bot, err := NewAlertBot(token, db)
	if err != nil {
		log.Fatalf("discord: %v", err)
	}
	if err := bot.Start(); err != nil {
		log.Fatalf("discord open: %v", err)
	}

	gateway := NewDiscordGateway(bot.session, bot.alertChannel)
	notifier := notify.NewNotifier(notify.NewStreamFeed(rdb), gateway)

	unsub, err := notifier.Subscribe(bot.handleCase)
	if err != nil {
		log.Fatalf("subscribe: %v", err)
	}
	_ = unsub // released via the global teardown below

	log.Println("Alert bot watching the critical stream")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	notifier.Unsubscribe()
	if err := bot.Stop(); err != nil {
		log.Printf("discord close: %v", err)
	}
}
