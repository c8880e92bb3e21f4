package converter

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"document-converter/internal/apperr"
	"document-converter/internal/config"
	"document-converter/internal/model"
)

// ConverterManager manages document converters and selects the appropriate one
// This is the "context" in the strategy pattern
type ConverterManager struct {
	converters map[string]Converter
	order      []string
	logger     logrus.FieldLogger
}

// NewConverterManager creates a new converter manager with the given converters
func NewConverterManager(logger logrus.FieldLogger, converters ...Converter) *ConverterManager {
	m := &ConverterManager{
		converters: make(map[string]Converter),
		logger:     logger,
	}
	for _, c := range converters {
		m.RegisterConverter(c)
	}
	return m
}

// RegisterConverter adds a new converter to the manager. A converter with the
// same kind replaces the earlier one.
func (m *ConverterManager) RegisterConverter(converter Converter) {
	kind := converter.Info().Kind
	if _, exists := m.converters[kind]; !exists {
		m.order = append(m.order, kind)
	}
	m.converters[kind] = converter
}

// Get returns the converter for kind
func (m *ConverterManager) Get(kind string) (Converter, error) {
	c, ok := m.converters[kind]
	if !ok {
		return nil, apperr.UnknownConversion(kind)
	}
	return c, nil
}

// List describes every registered converter in registration order
func (m *ConverterManager) List() []Info {
	infos := make([]Info, 0, len(m.order))
	for _, kind := range m.order {
		infos = append(infos, m.converters[kind].Info())
	}
	return infos
}

// Convert validates the request and runs the converter for kind
func (m *ConverterManager) Convert(ctx context.Context, kind string, req *Request) (*Result, error) {
	c, err := m.Get(kind)
	if err != nil {
		return nil, err
	}
	return m.run(ctx, c, req)
}

// ConvertToPDF converts a document to PDF using the first to-PDF converter
// that accepts its format
func (m *ConverterManager) ConvertToPDF(ctx context.Context, document *model.Document) (*Result, error) {
	for _, kind := range m.order {
		c := m.converters[kind]
		if c.Info().ToPDF && c.CanConvert(document) {
			return m.run(ctx, c, NewRequest(document))
		}
	}
	return nil, apperr.UnsupportedOperation("convert", "no converter found for format "+string(document.Format))
}

func (m *ConverterManager) run(ctx context.Context, c Converter, req *Request) (*Result, error) {
	info := c.Info()
	if err := Validate(info, req); err != nil {
		return nil, err
	}

	log := m.logger.WithFields(logrus.Fields{"kind": info.Kind, "files": len(req.Files)})
	start := time.Now()

	result, err := c.Convert(ctx, req)
	if err != nil {
		e := apperr.From(err)
		log.WithError(err).WithFields(logrus.Fields{
			"code":    e.Code,
			"context": e.ContextString(),
		}).Error("Conversion failed")
		return nil, e
	}

	log.WithFields(logrus.Fields{
		"result":   result.Name,
		"size":     result.Size(),
		"duration": time.Since(start).String(),
	}).Info("Conversion completed")
	return result, nil
}

// CreateDefaultManager creates a converter manager with the default set of converters
func CreateDefaultManager(images config.ImagesConfig, logger logrus.FieldLogger) *ConverterManager {
	manager := NewConverterManager(logger)

	// Register all available converters
	manager.RegisterConverter(NewMergeConverter(logger))
	manager.RegisterConverter(NewSplitConverter(logger))
	manager.RegisterConverter(NewCompressConverter(logger))
	manager.RegisterConverter(NewEditConverter(logger))
	manager.RegisterConverter(NewDOCXConverter(logger))
	manager.RegisterConverter(NewXLSXConverter(logger))
	manager.RegisterConverter(NewPPTXConverter(logger))
	manager.RegisterConverter(NewPDFToWordConverter(logger))
	manager.RegisterConverter(NewPDFToExcelConverter(logger))
	manager.RegisterConverter(NewPDFToJPGConverter(logger))
	manager.RegisterConverter(NewJPEGConverter(images, logger))
	manager.RegisterConverter(NewCSVConverter(logger))
	manager.RegisterConverter(NewTXTConverter(logger))
	manager.RegisterConverter(NewMDConverter(logger))
	manager.RegisterConverter(NewHTMLConverter(logger))

	return manager
}
