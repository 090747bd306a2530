package routes

import (
	"ClinicAdmin/controllers"
	"ClinicAdmin/notification"

	authorization "github.com/KanapuramVaishnavi/Core/config/authorization"

	"github.com/gin-gonic/gin"
)

type Dependencies struct {
	Admin     *controllers.AdminController
	WebSocket *notification.Handler
}

func adminGuard(action string) gin.HandlerFunc {
	return authorization.Authorize("admin", action)
}

func Routes(r *gin.Engine, d Dependencies) {
	//privateroutes
	r.Use(authorization.JWTAuth())
	r.GET("/ws", d.WebSocket.Connect)
	controllers.Admin(r, d.Admin, adminGuard)
}
