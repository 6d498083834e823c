package middleware

import (
	"net/http"

	"github.com/satch9/app-caisse-compta-sub000/internal/apierror"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/permission"

	"github.com/gin-gonic/gin"
)

const (
	UserKey = "utilisateur"

	MsgSessionRequise           = "Session expirée, veuillez vous reconnecter"
	MsgPermissionsEnChargement  = "Permissions en cours de chargement"
	MsgPermissionsInsuffisantes = "Permissions insuffisantes"
)

// RequireSession rejects requests when no operator is logged in. The 401
// body carries a redirect to the login screen.
func RequireSession(session *infra.Session) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !session.Authenticated() {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.LoginRedirect(MsgSessionRequise))
			return
		}
		if u := session.User(); u != nil {
			c.Set(UserKey, u)
		}
		c.Next()
	}
}

// RequirePermission lets the request through when any of perms is granted.
// While permissions are loading the answer is 503, never 403: an unknown
// permission is not a denied one.
func RequirePermission(session *infra.Session, perms ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch session.Gate().Any(perms...) {
		case permission.Granted:
			c.Next()
		case permission.Unknown:
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, apierror.New(MsgPermissionsEnChargement))
		default:
			c.AbortWithStatusJSON(http.StatusForbidden, apierror.New(MsgPermissionsInsuffisantes))
		}
	}
}
