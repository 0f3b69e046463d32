package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"expense-claims-front/controllers"
	claimform "expense-claims-front/lib/claim-form"
	claimview "expense-claims-front/lib/claim-view"
	"expense-claims-front/middleware"
	"expense-claims-front/models"
	apimodels "expense-claims-front/models/api"
	claimapimodels "expense-claims-front/models/api/claim"
)

type claimApiController struct {
	controllers.BaseAPIController
}

func InitClaimApiRouters(app *fiber.App) {
	controller := claimApiController{}
	app.Route("claim", func(router fiber.Router) {
		router.Get("view", controller.view)
		router.Post("pages/:pageID", controller.switchPage)
		router.Post("rows", controller.addRow)
		router.Put("rows/:rowID", controller.updateRow)
		router.Delete("rows/:rowID", controller.deleteRow)
		router.Post("submit", controller.submit)
	})
}

// @Summary Состояние интерфейса
// @Tags Заявка
// @Description Полное состояние интерфейса текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ViewState}
// @Failure 401
// @router /api/v1/claim/view [get]
func (c *claimApiController) view(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.ViewState(sess)))
}

// @Summary Переключение страницы
// @Tags Заявка
// @Description Переключение активной страницы, повторное переключение безопасно
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	pageID				path		string	true	"история или новая заявка: history | new-claim"
// @Success 200 {object} apimodels.Response{data=claimapimodels.ViewState}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @router /api/v1/claim/pages/{pageID} [post]
func (c *claimApiController) switchPage(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	if err := claimform.Instance.SwitchPage(ctx.Context(), sess, models.PageID(ctx.Params("pageID"))); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.ViewState(sess)))
}

// @Summary Добавить строку
// @Tags Заявка
// @Description Добавляет пустую строку в конец формы
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=claimapimodels.RowView}
// @Failure 401
// @router /api/v1/claim/rows [post]
func (c *claimApiController) addRow(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	row := claimform.Instance.AddRow(sess)
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.RowView(row)))
}

// @Summary Обновить строку
// @Tags Заявка
// @Description Обновляет поля строки и возвращает пересчитанный итог по ней
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	rowID				path		string	true	"идентификатор строки"
// @Param	body				body		claimapimodels.RowData	true	"request body"
// @Success 200 {object} apimodels.Response{data=claimapimodels.RowView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @router /api/v1/claim/rows/{rowID} [put]
func (c *claimApiController) updateRow(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	var payload claimapimodels.RowData
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rowID := ctx.Params("rowID")
	if err := claimform.Instance.UpdateRow(sess, rowID, payload); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	row := models.EntryRow{
		ID:          rowID,
		UseDate:     payload.UseDate,
		Purpose:     payload.Purpose,
		LineName:    payload.LineName,
		DepStation:  payload.DepStation,
		ArrStation:  payload.ArrStation,
		UnitPrice:   payload.UnitPrice,
		IsRoundTrip: payload.IsRoundTrip,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.RowView(row)))
}

// @Summary Удалить строку
// @Tags Заявка
// @Description Удаляет одну строку формы, остальные не меняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Param	rowID				path		string	true	"идентификатор строки"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @router /api/v1/claim/rows/{rowID} [delete]
func (c *claimApiController) deleteRow(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	if err := claimform.Instance.DeleteRow(sess, ctx.Params("rowID")); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Отправить заявку
// @Tags Заявка
// @Description Проверяет форму и отправляет заявку на бекенд.
// @Description Любая ошибка проверки отменяет отправку целиком,
// @Description при ошибке бекенда введенные данные сохраняются
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=claimapimodels.SubmitResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 409 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/claim/submit [post]
func (c *claimApiController) submit(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	applID, err := claimform.Instance.Submit(ctx.Context(), sess)
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimapimodels.SubmitResponse{ApplID: applID}))
}
