package handler

import (
	"errors"
	"net/http"
	"reflect"

	"belezapos/internal/apierror"
	"belezapos/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// respondError maps service error types to HTTP statuses. Reason-coded
// errors keep their Code in the envelope so clients can branch on it.
func respondError(c *gin.Context, err error) {
	var ve *service.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, apierror.WithCode(ve.Code, ve.Message))
		return
	}
	var ce *service.ConflictError
	if errors.As(err, &ce) {
		c.JSON(http.StatusConflict, apierror.WithCode(ce.Code, ce.Message))
		return
	}
	var ne *service.NotFoundError
	if errors.As(err, &ne) {
		c.JSON(http.StatusNotFound, apierror.New(ne.Message))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}
