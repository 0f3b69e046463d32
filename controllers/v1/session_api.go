package apiv1

import (
	"github.com/gofiber/fiber/v2"

	"expense-claims-front/controllers"
	claimform "expense-claims-front/lib/claim-form"
	claimview "expense-claims-front/lib/claim-view"
	authutils "expense-claims-front/lib/utils/auth-utils"
	"expense-claims-front/middleware"
	apimodels "expense-claims-front/models/api"
	sessionapimodels "expense-claims-front/models/api/session"
)

type sessionApiController struct {
	controllers.BaseAPIController
}

func InitSessionApiRouters(app *fiber.App) {
	controller := sessionApiController{}
	app.Route("session", func(router fiber.Router) {
		router.Post("login", controller.login)
		router.Use(middleware.AuthorizationRequired(), middleware.SessionRequired())
		router.Post("logout", controller.logout)
		router.Get("me", controller.me)
	})
}

// @Summary Вход по табельному номеру
// @Tags Сессия
// @Description Вход по табельному номеру, поиск сотрудника выполняет бекенд
// @Param	body				body		sessionapimodels.LoginRequest	true	"request body"
// @Success 200 {object} apimodels.Response{data=sessionapimodels.LoginResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 404 {object} apimodels.Response
// @Failure 502 {object} apimodels.Response
// @router /api/v1/session/login [post]
func (c *sessionApiController) login(ctx *fiber.Ctx) error {
	var payload sessionapimodels.LoginRequest
	if err := c.BodyParser(ctx, &payload); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	// пустой номер - локальная ошибка, запрос на бекенд не уходит
	if err := payload.Validate(); err != nil {
		return c.ErrorResponse(ctx, err)
	}
	sess, token, err := claimform.Instance.Login(ctx.Context(), payload.GetEmpCode())
	if err != nil {
		return c.ErrorResponse(ctx, err)
	}
	resp := sessionapimodels.LoginResponse{
		Token: token,
		User:  claimview.Instance.UserView(*getUser(sess)),
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(resp))
}

// @Summary Выход
// @Tags Сессия
// @Description Завершение сессии, состояние формы теряется
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 401
// @router /api/v1/session/logout [post]
func (c *sessionApiController) logout(ctx *fiber.Ctx) error {
	claimform.Instance.Logout(authutils.GetSessionID(ctx))
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Текущий сотрудник
// @Tags Сессия
// @Description Данные сотрудника текущей сессии
// @Param   Authorization		header		string	true	"Authorization token"
// @Success 200 {object} apimodels.Response{data=sessionapimodels.UserView}
// @Failure 401
// @router /api/v1/session/me [get]
func (c *sessionApiController) me(ctx *fiber.Ctx) error {
	sess := middleware.GetSession(ctx)
	user := getUser(sess)
	if user == nil {
		return ctx.SendStatus(fiber.StatusUnauthorized)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(claimview.Instance.UserView(*user)))
}
