package apiv1

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"expense-claims-front/controllers"
	claimform "expense-claims-front/lib/claim-form"
	claimview "expense-claims-front/lib/claim-view"
	pdfexport "expense-claims-front/lib/export/pdf"
	xlsexport "expense-claims-front/lib/export/xls"
	"expense-claims-front/middleware"
	"expense-claims-front/models"
	apimodels "expense-claims-front/models/api"
)

type historyApiController struct {
	controllers.BaseAPIController
}

func InitHistoryApiRouters(app *fiber.App) {
	controller := historyApiController{}
	app.Route("history", func(router fiber.Router) {
		router.Get("", controller.list)
		router.Get("export", controller.exportXls)
		router.Post("modal/close", controller.closeModal)
		router.Get(":applID", controller.details)
		router.Get(":applID/export", controller.exportPdf)
	})
}

// @Summary История заявок
// @Tags История
// @Description Загружает историю заявок сотрудника.
// @Description Ошибка загрузки возвращается внутри ответа и показывается вместо списка
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=claimapimodels.HistoryView}
// @Failure 401
// @router /api/v1/history [get]
func (c *historyApiController) list(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	claimform.Instance.LoadHistory(ctx.Context(), sess)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.HistoryView(sess)))
}

// @Summary Выгрузка истории в xlsx
// @Tags История
// @Description Выгружает историю заявок сотрудника файлом xlsx
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {file} file
// @Failure 401
// @Failure 502 {object} apimodels.Response
// @router /api/v1/history/export [get]
func (c *historyApiController) exportXls(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	claimform.Instance.LoadHistory(ctx.Context(), sess)

	sess.Lock()
	loadError := sess.HistoryError
	list := make([]models.HistoryEntry, len(sess.History))
	copy(list, sess.History)
	sess.Unlock()
	if loadError != "" {
		return c.ErrorResponse(ctx, models.NewRemoteError(loadError))
	}

	buf, err := xlsexport.Instance.ExportHistory(list)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="expense_history.xlsx"`)
	return ctx.Status(fiber.StatusOK).Send(buf.Bytes())
}

// @Summary Детали заявки
// @Tags История
// @Description Загружает детали заявки и открывает модальное окно.
// @Description Ошибка возвращается как блокирующая, в сообщения формы не попадает
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	applID				path		string	true	"идентификатор заявки"
// @Success 200 {object} apimodels.Response{data=claimapimodels.DetailsView}
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/history/{applID} [get]
func (c *historyApiController) details(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	details, err := claimform.Instance.ShowDetails(ctx.Context(), sess, ctx.Params("applID"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.DetailsView(*details)))
}

// @Summary Закрыть детали
// @Tags История
// @Description Закрывает модальное окно с деталями заявки
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401
// @router /api/v1/history/modal/close [post]
func (c *historyApiController) closeModal(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	claimform.Instance.CloseModal(sess)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Выгрузка заявки в pdf
// @Tags История
// @Description Выгружает печатную форму заявки файлом pdf
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	applID				path		string	true	"идентификатор заявки"
// @Success 200 {file} file
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/history/{applID}/export [get]
func (c *historyApiController) exportPdf(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	details, err := claimform.Instance.ShowDetails(ctx.Context(), sess, ctx.Params("applID"))
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	pdfFile, err := pdfexport.GenerateDetails(*details)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="expense_claim_%s.pdf"`, details.ApplID))
	return ctx.Status(fiber.StatusOK).Send(pdfFile)
}
