package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/aerissecure/adreport"
	"github.com/aerissecure/adreport/internal/logging"
	"github.com/aerissecure/adreport/internal/store"
	"github.com/aerissecure/adreport/xlsx"
)

// User-facing messages.
const (
	msgNoFile        = "No file uploaded."
	msgProcessFailed = "Failed to process file."
	msgTooLarge      = "The uploaded file is too large."
	msgNoDay         = "Please enter a day to filter."
	msgDayTooLong    = "Please enter a shorter day to filter."
	msgNoReport      = "No processed report found. Upload a file first."
	msgNoData        = "No data found for the specified day."
	msgFileNotFound  = "File not found."
)

// MaxDayLen is the longest day the filter route accepts.
const MaxDayLen = 64

// FilteredName is the store name for the report filtered by day. Days that
// need sanitizing get a short hash of the raw day so that "W d" and "W.d" do
// not share a file.
func FilteredName(day string) string {
	safe := store.SafeName(day)
	if safe != day {
		safe += "-" + uuid.NewSHA1(uuid.NameSpaceOID, []byte(day)).String()[:8]
	}
	return "filtered_data_" + safe + ".xlsx"
}

func (s *Server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{})
}

func (s *Server) upload(c *gin.Context) {
	logCtx := logging.FromContext(c)

	if s.maxUpload > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUpload)
	}
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logCtx.WithError(err).Warn("Upload rejected. Body too large.")
			c.HTML(http.StatusRequestEntityTooLarge, "index.html", gin.H{"message": msgTooLarge})
			return
		}
		logCtx.WithError(err).Info("Upload without file.")
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"message": msgNoFile})
		return
	}
	logCtx = logCtx.WithFields(log.Fields{"filename": fh.Filename, "size": fh.Size})

	f, err := fh.Open()
	if err != nil {
		logCtx.WithError(err).Error("Upload failed. Cannot open multipart file.")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"message": msgProcessFailed})
		return
	}
	defer f.Close()

	// Keep the raw upload next to the report, under a name we chose.
	uploadName := "upload-" + uuid.New().String() + ".xlsx"
	if err := s.store.PutReader(uploadName, io.NewSectionReader(f, 0, fh.Size)); err != nil {
		logCtx.WithError(err).Error("Upload failed. Cannot store raw file.")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"message": msgProcessFailed})
		return
	}

	derived, err := s.process(f, fh.Size)
	if err != nil {
		// Schema, parse and unreadable-workbook errors are the uploader's problem.
		logCtx.WithError(err).Warn("Upload failed. Cannot transform file.")
		c.HTML(http.StatusUnprocessableEntity, "index.html", gin.H{"message": msgProcessFailed})
		return
	}
	err = s.store.Put(ProcessedName, func(w io.Writer) error {
		return adreport.WriteDerivedTable(w, derived)
	})
	if err != nil {
		logCtx.WithError(err).Error("Upload failed. Cannot store report.")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"message": msgProcessFailed})
		return
	}
	logCtx.WithFields(log.Fields{"rows": derived.Len(), "stored": uploadName}).Info("Report processed.")
	c.HTML(http.StatusOK, "download.html", gin.H{
		"filename": ProcessedName,
		"preview":  template.HTML(xlsx.RenderSheetHTML(derived.Sheet())),
	})
}

func (s *Server) process(r io.ReaderAt, size int64) (adreport.DerivedTable, error) {
	raw, err := adreport.ReadRawTable(r, size)
	if err != nil {
		return adreport.DerivedTable{}, err
	}
	return s.tr.Transform(raw)
}

func (s *Server) download(c *gin.Context) {
	s.sendFile(c, c.Query("filename"))
}

func (s *Server) downloadFiltered(c *gin.Context) {
	s.sendFile(c, c.Param("filename"))
}

func (s *Server) sendFile(c *gin.Context, name string) {
	logCtx := logging.FromContext(c).WithField("filename", name)
	if name == "" || !s.store.Exists(name) {
		logCtx.Info("Download of unknown file.")
		c.String(http.StatusNotFound, msgFileNotFound)
		return
	}
	path, err := s.store.Path(name)
	if err != nil {
		c.String(http.StatusNotFound, msgFileNotFound)
		return
	}
	c.FileAttachment(path, name)
}

func (s *Server) filter(c *gin.Context) {
	logCtx := logging.FromContext(c)

	day := c.PostForm("day")
	if day == "" {
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgNoDay})
		return
	}
	if len(day) > MaxDayLen {
		logCtx.WithField("len", len(day)).Info("Filter day too long.")
		c.HTML(http.StatusBadRequest, "index.html", gin.H{"message": msgDayTooLong})
		return
	}
	logCtx = logCtx.WithField("day", day)

	f, size, err := s.store.Open(ProcessedName)
	if errors.Is(err, store.ErrNotFound) {
		logCtx.Info("Filter before any upload.")
		c.HTML(http.StatusNotFound, "index.html", gin.H{"message": msgNoReport})
		return
	}
	if err != nil {
		logCtx.WithError(err).Error("Filter failed. Cannot open report.")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"message": msgProcessFailed})
		return
	}
	derived, err := adreport.ReadDerivedTable(f, size)
	f.Close()
	if err != nil {
		logCtx.WithError(err).Error("Filter failed. Cannot read report.")
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{"message": msgProcessFailed})
		return
	}

	filtered, err := adreport.FilterWeekday(derived, day)
	if err != nil {
		c.HTML(http.StatusOK, "index.html", gin.H{"message": msgNoDay})
		return
	}
	if filtered.Empty() {
		c.HTML(http.StatusOK, "filter.html", gin.H{"message": msgNoData})
		return
	}

	name := FilteredName(day)
	err = s.store.Put(name, func(w io.Writer) error {
		return adreport.WriteDerivedTable(w, filtered)
	})
	if err != nil {
		logCtx.WithError(err).Error("Filter failed. Cannot store filtered report.")
		c.HTML(http.StatusInternalServerError, "filter.html", gin.H{"message": msgProcessFailed})
		return
	}
	logCtx.WithFields(log.Fields{"rows": filtered.Len(), "stored": name}).Info("Report filtered.")
	c.HTML(http.StatusOK, "filter.html", gin.H{
		"message":  fmt.Sprintf("Filtered dataset for %s has been saved successfully.", day),
		"filename": name,
		"preview":  template.HTML(xlsx.RenderSheetHTML(filtered.Sheet())),
	})
}
