package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"ebay_console_v1_202609/internal/controller"
	"ebay_console_v1_202609/internal/middleware"
	"ebay_console_v1_202609/internal/model"
	"ebay_console_v1_202609/internal/repository"
	"ebay_console_v1_202609/internal/router"
	"ebay_console_v1_202609/internal/service"
	"ebay_console_v1_202609/internal/task"
	"ebay_console_v1_202609/pkg/database"
	"ebay_console_v1_202609/pkg/ebay"
	"ebay_console_v1_202609/pkg/net"
	"ebay_console_v1_202609/pkg/utils"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 补种默认管理员
	seedAdmin(deps.Services.User)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := initEngine()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.User,
		deps.Controllers.Product,
		deps.Controllers.Category,
		deps.Controllers.Ebay,
		deps.Controllers.Policy,
		deps.Controllers.Publish,
		deps.Controllers.Order,
	)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Config      *ebay.Config
	Dispatcher  net.Dispatcher
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
}

// Repositories 仓库集合
type Repositories struct {
	Product  repository.ProductRepository
	Category repository.CategoryRepository
	Account  repository.AccountRepository
	User     repository.UserRepository
}

// Services 服务集合
type Services struct {
	Auth      *service.AuthService
	User      *service.UserService
	Product   *service.ProductService
	Category  *service.CategoryService
	Taxonomy  *service.TaxonomyService
	Policy    *service.PolicyService
	Inventory *service.InventoryService
	Publish   *service.PublishService
	Order     *service.OrderService
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	User     *controller.UserController
	Product  *controller.ProductController
	Category *controller.CategoryController
	Ebay     *controller.EbayController
	Policy   *controller.PolicyController
	Publish  *controller.PublishController
	Order    *controller.OrderController
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=ebay_admin password=1234 dbname=ebay_console port=5432 sslmode=disable")

	return database.InitDB(dsn,
		// Console
		&model.SysUser{},
		// Seller
		&model.SellerAccount{},
		// Catalog
		&model.Product{}, &model.Category{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- 配置 --------
	cfg := ebay.NewConfig(
		getEnv("EBAY_ENV", ebay.EnvSandbox),
		getEnv("EBAY_CLIENT_ID", ""),
		getEnv("EBAY_CLIENT_SECRET", ""),
		getEnv("EBAY_RU_NAME", ""),
	)
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		jwtCfg := middleware.DefaultJWTConfig()
		jwtCfg.SecretKey = secret
		middleware.SetJWTConfig(jwtCfg)
	}

	// -------- Repo 层 --------
	repos := &Repositories{
		Product:  repository.NewProductRepository(db),
		Category: repository.NewCategoryRepository(db),
		Account:  repository.NewAccountRepository(db),
		User:     repository.NewUserRepository(db),
	}

	// -------- 基础设施 --------
	dispatcher := net.NewDispatcher()
	oauthClient := utils.NewOAuthClient()

	// -------- 业务服务 --------
	services := &Services{}
	services.Auth = service.NewAuthService(cfg, repos.Account, oauthClient, dispatcher)
	services.User = service.NewUserService(repos.User)
	services.Product = service.NewProductService(repos.Product, repos.Category)
	services.Category = service.NewCategoryService(repos.Category, repos.Product)
	services.Taxonomy = service.NewTaxonomyService(cfg, repos.Account, dispatcher, repos.Category)
	services.Policy = service.NewPolicyService(cfg, repos.Account, dispatcher)
	services.Inventory = service.NewInventoryService(cfg, repos.Account, dispatcher)
	services.Publish = service.NewPublishService(cfg, services.Inventory, repos.Product)
	services.Order = service.NewOrderService(cfg, repos.Account, dispatcher)

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		User:     controller.NewUserController(services.User),
		Product:  controller.NewProductController(services.Product, services.Inventory),
		Category: controller.NewCategoryController(services.Category, services.Taxonomy),
		Ebay:     controller.NewEbayController(services.Taxonomy, services.Inventory, cfg),
		Policy:   controller.NewPolicyController(services.Policy),
		Publish:  controller.NewPublishController(services.Product, services.Publish),
		Order:    controller.NewOrderController(services.Order),
	}

	return &Dependencies{
		DB:          db,
		Config:      cfg,
		Dispatcher:  dispatcher,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// seedAdmin 保证存在管理员账号
func seedAdmin(userSvc *service.UserService) {
	username := getEnv("ADMIN_USERNAME", "admin")
	password := getEnv("ADMIN_PASSWORD", "admin123")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := userSvc.EnsureDefaultAdmin(ctx, username, password); err != nil {
		log.Printf("警告: 管理员账号补种失败: %v", err)
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// Token 刷新
	tokenTask := task.NewTokenTask(
		deps.Repos.Account,
		deps.Services.Auth,
	)
	tokenTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// initEngine 初始化 gin 引擎
func initEngine() *gin.Engine {
	if getEnv("GIN_MODE", "") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLog(), gin.Recovery())
	return r
}

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
