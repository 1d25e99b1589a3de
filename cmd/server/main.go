// cmd/server/main.go
package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/openchurch/campaign-service/internal/cache"
	"github.com/openchurch/campaign-service/internal/config"
	"github.com/openchurch/campaign-service/internal/controller"
	"github.com/openchurch/campaign-service/internal/db"
	"github.com/openchurch/campaign-service/internal/dispatch"
	"github.com/openchurch/campaign-service/internal/events"
	"github.com/openchurch/campaign-service/internal/extractor"
	"github.com/openchurch/campaign-service/internal/handler"
	"github.com/openchurch/campaign-service/internal/middleware"
	"github.com/openchurch/campaign-service/internal/model"
	"github.com/openchurch/campaign-service/internal/repository"
	"github.com/openchurch/campaign-service/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("failed to load config:", err)
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	campaignRepo := &repository.CampaignRepository{DB: conn}
	groupRepo := &repository.ContactGroupRepository{DB: conn}
	resultRepo := &repository.DispatchResultRepository{DB: conn}
	rsvpRepo := &repository.RSVPRepository{DB: conn}

	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ:", err)
		}
		defer p.Close()
		publisher = p
	} else {
		log.Println("⚠️ AMQP_URL not set, event publishing disabled")
	}

	var statsCache *cache.StatsCache
	if cfg.RedisAddr != "" {
		statsCache = cache.NewStatsCache(cfg.RedisAddr, cfg.StatsCacheTTL)
	} else {
		log.Println("⚠️ REDIS_ADDR not set, stats caching disabled")
	}

	senders := map[string]dispatch.Sender{
		model.ChannelEmail:    dispatch.NewEmailSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.FromName),
		model.ChannelSMS:      dispatch.NewSMSSender(cfg.SMSAPIURL, cfg.SMSAPIKey),
		model.ChannelWhatsApp: dispatch.NewWhatsAppSender(cfg.WhatsAppAPIURL, cfg.WhatsAppToken),
	}
	dispatcher := dispatch.NewDispatcher(senders, resultRepo, cfg.DispatchWorkers, cfg.SendTimeout)

	campaignService := &service.CampaignService{
		CampaignRepo: campaignRepo,
		GroupRepo:    groupRepo,
		Dispatcher:   dispatcher,
		Events:       publisher,
	}
	groupService := &service.ContactGroupService{GroupRepo: groupRepo}
	rsvpService := &service.RSVPService{
		CampaignRepo: campaignRepo,
		RSVPRepo:     rsvpRepo,
		Events:       publisher,
	}
	statsService := &service.StatsService{
		CampaignRepo: campaignRepo,
		RSVPRepo:     rsvpRepo,
	}
	if statsCache != nil {
		rsvpService.Cache = statsCache
		statsService.Cache = statsCache
	}

	campaignController := &controller.CampaignController{CampaignService: campaignService}
	groupController := &controller.ContactGroupController{
		GroupService: groupService,
		Extractor:    extractor.New(),
	}
	rsvpHandler := &handler.RSVPHandler{
		RSVPService:  rsvpService,
		StatsService: statsService,
	}

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Public surface: RSVP submissions come from recipients with no account.
	r.Post("/rsvp/{campaignID}", rsvpHandler.SubmitRSVP)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Authenticated surface.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.AuthJWTSecret))

		r.Post("/contacts/extract", groupController.ExtractContacts)

		r.Post("/contact-groups", groupController.CreateGroup)
		r.Get("/contact-groups", groupController.ListGroups)
		r.Delete("/contact-groups/{id}", groupController.DeleteGroup)

		r.Post("/campaigns", campaignController.CreateCampaign)
		r.Get("/campaigns", campaignController.ListCampaigns)
		r.Get("/campaigns/{id}", campaignController.GetCampaign)
		r.Post("/campaigns/{id}/send", campaignController.SendCampaign)
		r.Post("/campaigns/{id}/preview", campaignController.PersonalizedPreview)
		r.Put("/campaigns/{id}/archive", campaignController.ArchiveCampaign)
		r.Delete("/campaigns/{id}", campaignController.DeleteCampaign)

		r.Get("/campaigns/{id}/rsvp", rsvpHandler.ListResponses)
		r.Get("/campaigns/{id}/stats", rsvpHandler.GetStats)
	})

	log.Println("🚀 Server running on :" + cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, r))
}
