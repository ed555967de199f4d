package wire

import (
	"Naomi/internal/api"
	"Naomi/internal/api/config"
	"Naomi/internal/api/handler"
	"Naomi/internal/job"
	"Naomi/internal/pkg/cron"
	"Naomi/internal/pkg/kafka"
	"Naomi/internal/pkg/minio"
	"Naomi/internal/pkg/userhub"
	"Naomi/internal/repository"
	"Naomi/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	postRepo := repository.NewPostRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	userRepo := repository.NewUserRepo(db)

	hubClient := userhub.NewClient(cfg.UserHub)
	mediaStore := minio.Store{}

	userService := service.NewUserService(userRepo, hubClient)
	postService := service.NewPostService(postRepo, commentRepo, userService, mediaStore)
	commentService := service.NewCommentService(commentRepo, postRepo, userService)
	searchService := service.NewSearchService(postRepo, userRepo, commentRepo, userService, mediaStore)

	handlers := &api.HandlersGroup{
		PostHandler:    handler.NewPostHandler(postService),
		CommentHandler: handler.NewCommentHandler(commentService),
		SearchHandler:  handler.NewSearchHandler(searchService),
		MediaHandler:   handler.NewMediaHandler(mediaStore),
	}

	router := api.SetupRouter(handlers)

	kafkaMgr, err := kafka.NewConsumerManager(cfg, userRepo)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(job.NewMediaReconcileJob())

	return &ApplicationContainer{
		Router:       router,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
