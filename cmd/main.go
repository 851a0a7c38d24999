package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/examadmin/config"
	"github.com/lshigami/examadmin/database"
	"github.com/lshigami/examadmin/internal/controller"
	"github.com/lshigami/examadmin/internal/dto"
	"github.com/lshigami/examadmin/internal/logger"
	"github.com/lshigami/examadmin/internal/model"
	"github.com/lshigami/examadmin/internal/repository"
	"github.com/lshigami/examadmin/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Exam Administration API
// @version 1.0
// @description Backend for creating exams, inviting candidates and scoring their submissions.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewExamRepository,
			repository.NewQuestionRepository,
			repository.NewCandidateRepository,
			repository.NewResultRepository,
			repository.NewAnswerRepository,
		),

		fx.Provide(
			service.NewTokenService,
			service.NewSMTPMailer,
			service.NewAuthService,
			service.NewExamService,
			service.NewQuestionService,
			service.NewCandidateService,
			service.NewSessionService,
			service.NewResultService,
		),

		fx.Provide(
			controller.NewAuthController,
			controller.NewExamController,
			controller.NewQuestionController,
			controller.NewCandidateController,
			controller.NewSessionController,
			controller.NewResultController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("http_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires the API surface and manages the HTTP
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	tokens service.TokenService,
	authCtrl *controller.AuthController,
	examCtrl *controller.ExamController,
	questionCtrl *controller.QuestionController,
	candidateCtrl *controller.CandidateController,
	sessionCtrl *controller.SessionController,
	resultCtrl *controller.ResultController,
) {
	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, dto.HealthResponse{Status: "healthy"})
	})

	api := router.Group("/api")

	// Public: registration, login and the candidate exam-taking flow.
	api.POST("/auth/register", authCtrl.Register)
	api.POST("/auth/login", authCtrl.Login)
	api.GET("/exams/access/:unique_link", sessionCtrl.AccessExam)
	api.POST("/exams/submit/:unique_link", sessionCtrl.SubmitExam)

	// Everything else is creator-side and requires a bearer identity.
	authed := api.Group("", controller.RequireAuth(tokens))
	{
		authed.GET("/auth/me", authCtrl.Me)

		authed.POST("/exams", examCtrl.CreateExam)
		authed.GET("/exams", examCtrl.ListExams)
		authed.GET("/exams/:exam_id", examCtrl.GetExam)
		authed.PUT("/exams/:exam_id", examCtrl.UpdateExam)
		authed.DELETE("/exams/:exam_id", examCtrl.DeleteExam)
		authed.GET("/exams/:exam_id/questions", questionCtrl.ListExamQuestions)
		authed.GET("/exams/:exam_id/candidates", candidateCtrl.ListExamCandidates)
		authed.GET("/exams/:exam_id/results", resultCtrl.ListExamResults)

		authed.POST("/questions", questionCtrl.CreateQuestion)
		authed.GET("/questions/:question_id", questionCtrl.GetQuestion)
		authed.PUT("/questions/:question_id", questionCtrl.UpdateQuestion)
		authed.DELETE("/questions/:question_id", questionCtrl.DeleteQuestion)

		authed.POST("/candidates", candidateCtrl.CreateCandidate)
		authed.GET("/candidates", candidateCtrl.ListCandidates)
		authed.GET("/candidates/:candidate_id", candidateCtrl.GetCandidate)
		authed.PUT("/candidates/:candidate_id", candidateCtrl.UpdateCandidate)
		authed.DELETE("/candidates/:candidate_id", candidateCtrl.DeleteCandidate)
		authed.POST("/candidates/:candidate_id/send-invitation", candidateCtrl.SendInvitation)
		authed.GET("/candidates/:candidate_id/result", resultCtrl.GetCandidateResult)

		authed.GET("/results/:result_id", resultCtrl.GetResult)
		authed.PUT("/results/:result_id/evaluate", resultCtrl.EvaluateResult)
		authed.GET("/results/:result_id/export", resultCtrl.ExportResult)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam administration API starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Exam{},
		&model.Question{},
		&model.Option{},
		&model.Candidate{},
		&model.Result{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
