package server

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v2"

	"github.com/shouni/gemini-poem-kit/pkg/domain"
	"github.com/shouni/gemini-poem-kit/pkg/utils"
)

const (
	msgGenerate         = "Failed to generate poem."
	msgRegenerateLength = "Failed to regenerate poem with length."
	msgRegenerateTone   = "Failed to regenerate poem with tone."
	msgInvalidBody      = "invalid body"
)

func (a *Api) Health() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(HealthResponse{
			Status:    fiber.StatusOK,
			TimeStamp: time.Now().Unix(),
		})
	}
}

func (a *Api) GeneratePoem() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		logger := HttpLogger("generatePoem", ctx)

		var requestBody GeneratePoemRequest
		if err := ctx.BodyParser(&requestBody); err != nil {
			return badRequest(ctx, msgInvalidBody)
		}

		image, err := a.checkImage(requestBody.Image)
		if err != nil {
			logger.Warn("image rejected", "err", err)
			return badRequest(ctx, err.Error())
		}

		// 省略時のデフォルトはここで明示的に適用する
		style := requestBody.StylePreferences
		if strings.TrimSpace(style) == "" {
			style = a.defaultStyle
		}

		out := a.poems.GenerateFromImage(ctx.UserContext(), image, style)
		return respond(ctx, logger, out, msgGenerate)
	}
}

func (a *Api) RegenerateWithLength() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		logger := HttpLogger("regenerateWithLength", ctx)

		var requestBody RegenerateLengthRequest
		if err := ctx.BodyParser(&requestBody); err != nil {
			return badRequest(ctx, msgInvalidBody)
		}

		image, err := a.checkImage(requestBody.Image)
		if err != nil {
			logger.Warn("image rejected", "err", err)
			return badRequest(ctx, err.Error())
		}

		out := a.poems.RegenerateWithLength(ctx.UserContext(), image, domain.PoemLength(requestBody.PoemLength))
		return respond(ctx, logger, out, msgRegenerateLength)
	}
}

func (a *Api) RegenerateWithTone() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		logger := HttpLogger("regenerateWithTone", ctx)

		var requestBody RegenerateToneRequest
		if err := ctx.BodyParser(&requestBody); err != nil {
			return badRequest(ctx, msgInvalidBody)
		}

		image, err := a.checkImage(requestBody.Image)
		if err != nil {
			logger.Warn("image rejected", "err", err)
			return badRequest(ctx, err.Error())
		}

		out := a.poems.RegenerateWithTone(ctx.UserContext(), image, requestBody.Tone)
		return respond(ctx, logger, out, msgRegenerateTone)
	}
}

// checkImage はアップロードポリシー (サイズ・形式) を適用します。
func (a *Api) checkImage(raw string) (domain.ImagePayload, error) {
	image := domain.ImagePayload(raw)
	if err := a.policy.Check(image); err != nil {
		return "", err
	}
	return image, nil
}

// respond は Outcome を HTTP ステータスとボディに変換します。
// モデル側の失敗は詳細を隠し、固定のメッセージだけを返します。
func respond(ctx *fiber.Ctx, logger *log.Logger, out domain.Outcome, failMessage string) error {
	if out.OK() {
		poem := string(out.Poem)
		logger.Info("poem generated", "runes", utf8.RuneCountInString(poem), "preview", utils.Truncate(utils.OneLine(poem), 40))
		return ctx.Status(fiber.StatusOK).JSON(PoemResponse{Poem: poem})
	}

	f := out.Failure
	if f.Kind == domain.KindValidation {
		logger.Warn("request rejected", "kind", f.Kind, "err", f.Err)
		message := f.Kind.String()
		if f.Err != nil {
			message = f.Err.Error()
		}
		return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error:   f.Kind.String(),
			Message: message,
		})
	}

	logger.Error("poem generation failed", "kind", f.Kind, "err", f.Err)
	return ctx.Status(fiber.StatusBadGateway).JSON(ErrorResponse{
		Error:   f.Kind.String(),
		Message: failMessage,
	})
}

func badRequest(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
		Error:   domain.KindValidation.String(),
		Message: message,
	})
}
