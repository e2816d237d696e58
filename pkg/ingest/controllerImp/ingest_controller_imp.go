package controllerImp

import (
	"errors"
	"io"
	"net/http"
	"unicode/utf8"

	"github.com/labstack/echo/v4"

	"farms/pkg/ingest"
)

type IngestCtrl struct{ svc *ingest.Service }

func New(svc *ingest.Service) *IngestCtrl { return &IngestCtrl{svc} }

func (h *IngestCtrl) CSV(c echo.Context) error {
	content, err := readTextUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	return h.run(c, ingest.NewCsvSource(content))
}

func (h *IngestCtrl) GeoJSON(c echo.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return badRequest(c, errors.New("cannot read request body"))
	}
	return h.run(c, ingest.NewGeoJSONSource(body))
}

func (h *IngestCtrl) XML(c echo.Context) error {
	content, err := readTextUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	return h.run(c, ingest.NewXMLSource([]byte(content)))
}

func (h *IngestCtrl) XLSX(c echo.Context) error {
	data, err := readUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	return h.run(c, ingest.NewXlsxSource(data))
}

func (h *IngestCtrl) HTML(c echo.Context) error {
	content, err := readTextUpload(c)
	if err != nil {
		return badRequest(c, err)
	}
	return h.run(c, ingest.NewHTMLTableSource(content))
}

func (h *IngestCtrl) run(c echo.Context, src ingest.Source) error {
	sum, err := h.svc.Run(src)
	if err != nil {
		if errors.Is(err, ingest.ErrValidation) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, sum)
}

func badRequest(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// readUpload pulls the multipart "file" part.
func readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, errors.New("multipart field 'file' is required")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.New("cannot open upload: " + err.Error())
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.New("cannot read upload: " + err.Error())
	}
	return data, nil
}

// readTextUpload additionally enforces UTF-8; text feeds must be decodable
// before parsing.
func readTextUpload(c echo.Context) (string, error) {
	data, err := readUpload(c)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", errors.New("upload must be UTF-8 encoded")
	}
	return string(data), nil
}
