package api

import (
	"fmt"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/vietanh2810/prompt-rewards-api/docs"
	v1 "github.com/vietanh2810/prompt-rewards-api/internal/api/handler/v1"
	"github.com/vietanh2810/prompt-rewards-api/internal/api/middleware"
	"github.com/vietanh2810/prompt-rewards-api/internal/config"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository"
	"github.com/vietanh2810/prompt-rewards-api/internal/repository/dao"
	"github.com/vietanh2810/prompt-rewards-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine

	// Distributor is exposed so the rewards config can be reloaded at runtime.
	Distributor *service.AssetDistributor
}

func NewServer(conf *config.AppConfig, db *gorm.DB) (*Server, error) {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	userSvc := service.NewUserService(repository.NewUserRepository(dao.NewUserDAO(db)))
	submissionSvc, err := s.initSubmissionService(db)
	if err != nil {
		return nil, fmt.Errorf("s.initSubmissionService -> %w", err)
	}

	s.MountHandlers(
		v1.NewUserHandler(userSvc),
		v1.NewSubmissionHandler(submissionSvc, userSvc),
	)

	return s, nil
}

func (s *Server) initSubmissionService(db *gorm.DB) (*service.SubmissionService, error) {
	catalogDAO := dao.NewCatalogDAO(db)
	catalog := repository.NewCatalogRepository(catalogDAO, dao.NewPromptDAO(db), dao.NewCharacterDAO(db))
	assets := repository.NewAssetRepository(dao.NewAssetDAO(db), catalogDAO)

	roller, err := service.NewWeightedRoller(s.Config.Rewards.LootSeed)
	if err != nil {
		return nil, fmt.Errorf("service.NewWeightedRoller -> %w", err)
	}
	s.Distributor = service.NewAssetDistributor(assets, catalog, roller, s.Config.Rewards.MaxLootRolls)

	svc := service.NewSubmissionService(
		dao.NewTxManager(db),
		repository.NewSubmissionRepository(dao.NewSubmissionDAO(db)),
		catalog,
		repository.NewUserRepository(dao.NewUserDAO(db)),
		assets,
		s.Distributor,
		repository.NewNotificationRepository(dao.NewNotificationDAO(db)),
	)

	return svc, nil
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(userHandler *v1.UserHandler, submissionHandler *v1.SubmissionHandler) {
	const basePath = "/api/v1"

	authenticator := middleware.NewAuthenticator(s.Config.API.JWTSigningKey)

	auth := s.Router.Group(basePath, authenticator.VerifyJWT())
	{
		auth.GET("/users/:userID", userHandler.HandleGetUser)
		auth.POST("/submissions", submissionHandler.HandleCreateSubmission)
		auth.GET("/submissions/:submissionID", submissionHandler.HandleGetSubmission)
		auth.GET("/owners/:ownerType/:ownerID/assets", submissionHandler.HandleGetOwnedAssets)
	}

	admin := s.Router.Group(basePath+"/admin", authenticator.VerifyJWT(), middleware.RequireStaff())
	{
		admin.GET("/submissions", submissionHandler.HandleListSubmissions)
		admin.POST("/submissions/:submissionID/approve", submissionHandler.HandleApproveSubmission)
		admin.POST("/submissions/:submissionID/reject", submissionHandler.HandleRejectSubmission)
	}

	s.Router.GET("/", v1.HandleHealthcheck)
	s.Router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "Prompt rewards API"
	docs.SwaggerInfo.Description = "Prompt submissions and the rewards granted when staff approve them."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
