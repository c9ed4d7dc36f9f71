package routes

import (
	"ClinicHub/controllers"

	"github.com/gin-gonic/gin"
)

type Controllers struct {
	Health     *controllers.HealthController
	Invoice    *controllers.InvoiceController
	SampleType *controllers.SampleTypeController
}

func Routes(r *gin.Engine, ctrls Controllers) {

	//public
	controllers.Health(r, ctrls.Health)

	api := r.Group("/api")
	controllers.Invoice(api, ctrls.Invoice)
	controllers.SampleType(api, ctrls.SampleType)
}
