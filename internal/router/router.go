package router

import (
	"github.com/gin-gonic/gin"

	"ebay_console_v1_202609/internal/controller"
	"ebay_console_v1_202609/internal/middleware"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	userCtrl *controller.UserController,
	productCtrl *controller.ProductController,
	categoryCtrl *controller.CategoryController,
	ebayCtrl *controller.EbayController,
	policyCtrl *controller.PolicyController,
	publishCtrl *controller.PublishController,
	orderCtrl *controller.OrderController) {

	api := r.Group("/api")
	{
		// eBay 卖家授权
		auth := api.Group("/auth")
		{
			// GET /api/auth/login-url
			auth.GET("/login-url", authCtrl.GetLoginURL)

			// GET /api/auth/callback (eBay 回跳，不能加鉴权)
			auth.GET("/callback", authCtrl.HandleCallback)

			auth.POST("/refresh", authCtrl.RefreshToken)
			auth.GET("/status", authCtrl.GetAccountStatus)
		}

		// 控制台用户 (登录/刷新开放，其余需 JWT)
		console := api.Group("/console")
		{
			console.POST("/login", userCtrl.Login)
			console.POST("/refresh", userCtrl.RefreshToken)

			authed := console.Group("", middleware.JWTAuth())
			{
				authed.GET("/profile", userCtrl.GetProfile)
				authed.POST("/change-password", userCtrl.ChangePassword)
				// 仅管理员可开新账号
				authed.POST("/users", middleware.RequireRole("admin"), userCtrl.CreateUser)
			}
		}

		// 本地商品目录
		products := api.Group("/products")
		{
			products.GET("", productCtrl.GetProducts)
			products.POST("", productCtrl.CreateProduct)
			products.GET("/:sku", productCtrl.GetProduct)
			products.PUT("/:sku", productCtrl.UpdateProduct)
			products.DELETE("/:sku", productCtrl.DeleteProduct)

			// POST /api/products/:sku/publish 一键发布链路
			products.POST("/:sku/publish", publishCtrl.Publish)
		}

		// 上架状态检查 (本地记录 + eBay 库存项)
		api.GET("/ebay-status/:sku", productCtrl.GetEbayStatus)

		// 本地类目
		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetCategories)
			categories.POST("", categoryCtrl.CreateCategory)
			categories.POST("/import", categoryCtrl.ImportCategory)
			categories.GET("/:id", categoryCtrl.GetCategory)
			categories.PUT("/:id", categoryCtrl.UpdateCategory)
			categories.DELETE("/:id", categoryCtrl.DeleteCategory)
		}

		// eBay 平台直通 (类目树 / 库存 / Offer)
		ebayGroup := api.Group("/ebay")
		{
			ebayGroup.GET("/categories/search", ebayCtrl.SearchCategories)
			ebayGroup.GET("/categories/:id", ebayCtrl.GetCategorySubtree)
			ebayGroup.GET("/aspects/:categoryId", ebayCtrl.GetAspects)
			ebayGroup.GET("/locations", ebayCtrl.GetLocations)
			ebayGroup.GET("/inventory/:sku", ebayCtrl.GetInventoryItem)
			ebayGroup.GET("/offers/:sku", ebayCtrl.GetOffers)
			ebayGroup.POST("/offer", ebayCtrl.CreateOffer)
			ebayGroup.POST("/offer/:offerId/publish", ebayCtrl.PublishOffer)
		}

		// eBay 卖家策略
		policies := api.Group("/ebay-policies")
		{
			policies.GET("", policyCtrl.ListAllPolicies)
			policies.GET("/:type", policyCtrl.ListPolicies)
			policies.POST("/:type", policyCtrl.CreatePolicy)
			policies.GET("/:type/:id", policyCtrl.GetPolicy)
			policies.PUT("/:type/:id", policyCtrl.UpdatePolicy)
			policies.DELETE("/:type/:id", policyCtrl.DeletePolicy)
		}

		// eBay 订单 (只读)
		orders := api.Group("/ebay-orders")
		{
			orders.GET("", orderCtrl.ListOrders)
			orders.GET("/:orderId", orderCtrl.GetOrder)
		}
	}
}
