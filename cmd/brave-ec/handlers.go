package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/therealplato/brave-ec/eckey"

	"github.com/labstack/echo/v4"
)

type GenericError struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type GenericStatus struct {
	Daemon  string `json:"daemon"`
	Status  string `json:"status"`
	Message string `json:"msg,omitempty"`
}

func (srv *Server) errorHandler(err error, c echo.Context) {
	code := http.StatusInternalServerError
	var errorMessage string
	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		errorMessage = fmt.Sprintf("%s", he.Message)
	}
	if code >= 500 {
		srv.logger.Warn("brave-ec-http-internal-error", "err", err)
	}
	c.JSON(code, GenericStatus{Status: "error", Daemon: "brave-ec", Message: errorMessage})
}

func (srv *Server) HandleHealthCheck(c echo.Context) error {
	return c.JSON(200, GenericStatus{Status: "ok", Daemon: "brave-ec"})
}

// maps key codec and provider errors to an HTTP status and error name
func errorResponse(err error) (int, GenericError) {
	var name string
	code := http.StatusBadRequest
	switch {
	case errors.Is(err, eckey.ErrProviderFailure):
		code = http.StatusBadGateway
		name = "ProviderFailure"
	case errors.Is(err, eckey.ErrStructuralMismatch):
		name = "StructuralMismatch"
	case errors.Is(err, eckey.ErrNoRecognizedPemBlock):
		name = "NoRecognizedPemBlock"
	case errors.Is(err, eckey.ErrUnrecognizedEncoding):
		name = "UnrecognizedEncoding"
	case errors.Is(err, eckey.ErrUnsupportedInputType):
		name = "UnsupportedInputType"
	default:
		code = http.StatusInternalServerError
		name = "InternalError"
	}
	return code, GenericError{Error: name, Message: err.Error()}
}

func (srv *Server) keyError(c echo.Context, err error) error {
	code, body := errorResponse(err)
	if code >= 500 {
		srv.logger.Warn("key operation failed", "path", c.Path(), "err", err)
	} else {
		srv.logger.Debug("rejected key input", "path", c.Path(), "err", err)
	}
	return c.JSON(code, body)
}

// Body is PEM or hex text, or binary DER when sent as application/octet-stream.
func (srv *Server) HandleCanonicalize(c echo.Context) error {
	ctx, cancel := srv.providerContext(c.Request().Context())
	defer cancel()

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return c.JSON(400, GenericError{
			Error:   "BadRequest",
			Message: fmt.Sprintf("reading request body: %s", err),
		})
	}

	var rec *eckey.KeyPairRecord
	if strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEOctetStream) {
		rec, err = srv.canon.Canonicalize(ctx, body)
	} else {
		rec, err = srv.canon.FromReader(ctx, bytes.NewReader(body))
	}
	if err != nil {
		return srv.keyError(c, err)
	}

	if rec.HasPrivate() {
		c.Response().Header().Set("Cache-Control", "no-store")
	}
	return c.JSON(200, newKeyOutput("", rec))
}

func (srv *Server) HandleGenerate(c echo.Context) error {
	ctx, cancel := srv.providerContext(c.Request().Context())
	defer cancel()

	rec, err := srv.canon.Generate(ctx)
	if err != nil {
		return srv.keyError(c, err)
	}
	c.Response().Header().Set("Cache-Control", "no-store")
	return c.JSON(200, newKeyOutput("", rec))
}
