package controllers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"expense-claims-front/models"
	apimodels "expense-claims-front/models/api"
)

type BaseAPIController struct{}

func (c *BaseAPIController) BodyParser(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		log.WithError(err).Error("ошибка распознавания запроса")
		return errors.New("не удалось получить данные из запроса")
	}
	return nil
}

// ErrorResponse переводит ошибку обработчика в HTTP ответ.
// Локальные ошибки валидации не считаются исключительными и не логируются,
// ошибки бекенда логируются и уходят пользователю с сообщением как есть
func (c *BaseAPIController) ErrorResponse(ctx *fiber.Ctx, err error) error {
	switch {
	case models.IsValidationError(err):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	case models.IsBusyError(err):
		return ctx.Status(fiber.StatusConflict).JSON(apimodels.NewError(err.Error()))
	case models.IsNotFoundError(err):
		log.WithError(err).Warn("запись не найдена на бекенде")
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case models.IsRemoteError(err):
		log.WithError(err).Error("ошибка бекенда")
		return ctx.Status(fiber.StatusBadGateway).JSON(apimodels.NewError(err.Error()))
	}
	log.WithError(err).Error("внутренняя ошибка")
	return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
}
