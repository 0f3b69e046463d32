package initializers

import (
	"context"

	"expense-claims-front/config"
	"expense-claims-front/fiberlog"
	claimform "expense-claims-front/lib/claim-form"
	claimview "expense-claims-front/lib/claim-view"
	expenseclient "expense-claims-front/lib/expense-backend/client"
	xlsexport "expense-claims-front/lib/export/xls"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	expenseclient.NewProvider(
		config.Conf.Backend.Host,
		config.Conf.Backend.AnonKey,
		config.Conf.Backend.RequestTimeoutInSec,
	)
	claimview.NewHandler()
	claimform.NewHandler()
	xlsexport.NewHandler()
}
