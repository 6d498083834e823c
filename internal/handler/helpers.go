package handler

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/satch9/app-caisse-compta-sub000/internal/apierror"
	"github.com/satch9/app-caisse-compta-sub000/internal/infra"
	"github.com/satch9/app-caisse-compta-sub000/internal/middleware"
	"github.com/satch9/app-caisse-compta-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// TerminalHeader selects the till terminal a request acts on.
const TerminalHeader = "X-Terminal-ID"

var validate = validator.New()

func init() {
	// decimal.Decimal validates as a number (min=0, gt=0).
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds the JSON body and runs validator tags. On failure it
// writes the response and returns false.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalide : "+err.Error()))
		return false
	}
	return valider(c, req)
}

// bindQuery is bindAndValidate for query-string filters.
func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Paramètres invalides : "+err.Error()))
		return false
	}
	return valider(c, req)
}

func valider(c *gin.Context, req interface{}) bool {
	if err := validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
			return false
		}
		fields := make(map[string]string)
		for _, fe := range verrs {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps a service or backend error onto the local API:
// validation 422, unknown resource 404, in-flight 409, session lost 401 with
// a login redirect, backend failures keep the backend's 4xx or become 502.
func respondError(c *gin.Context, err error) {
	var (
		e    *service.Erreur
		berr *infra.BackendError
	)
	switch {
	case errors.Is(err, infra.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, apierror.LoginRedirect(middleware.MsgSessionRequise))
	case errors.Is(err, service.ErrOperationEnCours):
		c.JSON(http.StatusConflict, apierror.New("Opération déjà en cours"))
	case errors.As(err, &e) && errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusUnprocessableEntity, apierror.New(e.Message))
	case errors.As(err, &e) && errors.Is(err, service.ErrIntrouvable):
		c.JSON(http.StatusNotFound, apierror.New(e.Message))
	case errors.As(err, &berr):
		status := http.StatusBadGateway
		if berr.Status >= 400 && berr.Status < 500 {
			status = berr.Status
		}
		c.JSON(status, apierror.New(berr.Message))
	default:
		log.Error().
			Err(err).
			Str("request_id", c.GetString(middleware.RequestIDKey)).
			Str("path", c.FullPath()).
			Msg("internal error")
		c.JSON(http.StatusInternalServerError, apierror.New(middleware.MsgErreurInterne))
	}
}

// paramID reads a positive integer path parameter.
func paramID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, apierror.New("Identifiant invalide"))
		return 0, false
	}
	return id, true
}

// terminalID is the X-Terminal-ID header, or fallback.
func terminalID(c *gin.Context, fallback string) string {
	if id := strings.TrimSpace(c.GetHeader(TerminalHeader)); id != "" && len(id) <= 64 {
		return id
	}
	return fallback
}

func envoyerFichier(c *gin.Context, f *service.Fichier) {
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, f.Nom))
	c.Data(http.StatusOK, f.ContentType, f.Data)
}
