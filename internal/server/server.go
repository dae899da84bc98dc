package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/archivedesk/minutes/internal/audit"
	"github.com/archivedesk/minutes/internal/cache"
	"github.com/archivedesk/minutes/internal/compress"
	"github.com/archivedesk/minutes/internal/config"
	"github.com/archivedesk/minutes/internal/fsutil"
	"github.com/archivedesk/minutes/internal/jobs"
	"github.com/archivedesk/minutes/internal/metadata"
	"github.com/archivedesk/minutes/internal/service"
	"github.com/archivedesk/minutes/internal/store"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

// Handler holds the service layer behind the HTTP surface.
type Handler struct {
	locations *service.LocationService
	moms      *service.MomService
	stats     *service.StatsService
}

// Server wires config, storage, services and background jobs behind the
// HTTP listener.
type Server struct {
	httpPort string
}

func NewServer(httpPort string) *Server {
	return &Server{httpPort: httpPort}
}

func (s *Server) Start() {
	if err := Start(s.httpPort); err != nil {
		logrus.Fatalf("error starting server: %v", err)
	}
}

// Start builds the full stack and serves until SIGINT/SIGTERM.
func Start(httpPort string) error {
	cnf := config.LoadConfig()
	if httpPort == "" {
		httpPort = cnf.HTTPPort
	}

	db := config.GetDb(cnf)
	st := store.NewGormStore(db)
	if err := st.Migrate(); err != nil {
		return err
	}

	tree := fsutil.NewTree(cnf.DataRoot)
	exporter := metadata.NewExporter(tree)
	auditor := audit.NewLogger(db)
	codec := compress.ForName(cnf.ArchiveCompress)

	var kv cache.KV
	if cnf.RedisAddr != "" {
		kv = cache.NewRedis(cnf.RedisAddr)
	} else {
		kv = cache.NewMemory()
	}

	stats := service.NewStatsService(st, kv)
	moms := service.NewMomService(st, tree, exporter, auditor, codec, stats)
	locations := service.NewLocationService(st, auditor)

	executor := jobs.NewTaskExecutor([]jobs.CronJob{
		jobs.NewReminderScanTask(cnf.ReminderScanCron, moms, nil),
	})
	executor.Run()
	defer executor.Stop()

	handler := &Handler{locations: locations, moms: moms, stats: stats}
	engine := newRouter(handler)

	httpServer := &http.Server{
		Addr: ":" + httpPort,
		Handler: cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			AllowCredentials: true,
		}).Handler(engine),
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on :%s", httpPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		logrus.Infof("received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

func newRouter(h *Handler) *gin.Engine {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger())

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	v1 := engine.Group("/v1")
	{
		v1.POST("/locations", h.createLocation)
		v1.GET("/locations", h.listLocations)
		v1.PATCH("/locations/:id", h.updateLocation)
		v1.DELETE("/locations/:id", h.deleteLocation)

		v1.POST("/moms", h.createMom)
		v1.GET("/moms", h.listMoms)
		v1.DELETE("/moms", h.deleteAllMoms)
		v1.GET("/moms/by-number/:number", h.getMomByNumber)
		v1.GET("/moms/:id", h.getMom)
		v1.PATCH("/moms/:id", h.updateMom)
		v1.DELETE("/moms/:id", h.deleteMom)
		v1.POST("/moms/:id/close", h.closeMom)
		v1.POST("/moms/:id/reopen", h.reopenMom)
		v1.POST("/moms/:id/file", h.uploadMomFile)
		v1.GET("/moms/:id/history", h.listHistory)

		v1.POST("/moms/:id/actions", h.createAction)
		v1.GET("/moms/:id/actions", h.listActions)

		v1.POST("/moms/:id/drafts", h.createDraft)
		v1.GET("/moms/:id/drafts", h.listDrafts)
		v1.GET("/moms/:id/drafts/latest", h.getLatestDraft)

		v1.GET("/moms/:id/topics", h.listLinkedTopics)
		v1.POST("/moms/:id/topics/:topicId", h.linkTopic)
		v1.DELETE("/moms/:id/topics/:topicId", h.unlinkTopic)
		v1.GET("/moms/:id/records", h.listLinkedRecords)
		v1.POST("/moms/:id/records/:recordId", h.linkRecord)
		v1.DELETE("/moms/:id/records/:recordId", h.unlinkRecord)
		v1.GET("/moms/:id/letters", h.listLinkedLetters)
		v1.POST("/moms/:id/letters/:letterId", h.linkLetter)
		v1.DELETE("/moms/:id/letters/:letterId", h.unlinkLetter)

		v1.PATCH("/actions/:id", h.updateAction)
		v1.POST("/actions/:id/resolve", h.resolveAction)
		v1.POST("/actions/:id/reopen", h.reopenAction)
		v1.POST("/actions/:id/file", h.uploadActionFile)
		v1.POST("/actions/:id/reminder-ack", h.acknowledgeReminder)

		v1.POST("/drafts/:id/file", h.uploadDraftFile)
		v1.DELETE("/drafts/:id", h.deleteDraft)

		v1.GET("/stats", h.getStats)
		v1.GET("/reminders/due", h.listDueReminders)
		v1.GET("/reminders/deadlines", h.listDeadlines)
	}

	return engine
}
