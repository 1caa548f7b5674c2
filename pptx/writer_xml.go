package pptx

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
	"time"
)

// XML namespace constants
const (
	nsRelationships  = "http://schemas.openxmlformats.org/package/2006/relationships"
	nsContentTypes   = "http://schemas.openxmlformats.org/package/2006/content-types"
	nsPresentationML = "http://schemas.openxmlformats.org/presentationml/2006/main"
	nsDrawingML      = "http://schemas.openxmlformats.org/drawingml/2006/main"
	nsChart          = "http://schemas.openxmlformats.org/drawingml/2006/chart"
	nsOfficeDocRels  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
	nsDCTerms        = "http://purl.org/dc/terms/"
	nsDC             = "http://purl.org/dc/elements/1.1/"
	nsCoreProperties = "http://schemas.openxmlformats.org/package/2006/metadata/core-properties"
	nsExtProperties  = "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties"
	nsCustomProps    = "http://schemas.openxmlformats.org/officeDocument/2006/custom-properties"
	nsDocPropsVTypes = "http://schemas.openxmlformats.org/officeDocument/2006/docPropsVTypes"
	nsXSI            = "http://www.w3.org/2001/XMLSchema-instance"

	relTypeSlide       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide"
	relTypeSlideMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideMaster"
	relTypeSlideLayout = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/slideLayout"
	relTypeTheme       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/theme"
	relTypePresProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/presProps"
	relTypeViewProps   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/viewProps"
	relTypeTableStyles = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/tableStyles"
	relTypeOfficeDoc   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeCoreProps   = "http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties"
	relTypeExtProps    = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties"
	relTypeCustomProps = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/custom-properties"
	relTypeImage       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/image"
	relTypeHyperlink   = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/hyperlink"
	relTypeChart       = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/chart"
	relTypeNotesSlide  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesSlide"
	relTypeNotesMaster = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/notesMaster"

	ctPresentation = "application/vnd.openxmlformats-officedocument.presentationml.presentation.main+xml"
	ctSlide        = "application/vnd.openxmlformats-officedocument.presentationml.slide+xml"
	ctSlideMaster  = "application/vnd.openxmlformats-officedocument.presentationml.slideMaster+xml"
	ctSlideLayout  = "application/vnd.openxmlformats-officedocument.presentationml.slideLayout+xml"
	ctTheme        = "application/vnd.openxmlformats-officedocument.theme+xml"
	ctPresProps    = "application/vnd.openxmlformats-officedocument.presentationml.presProps+xml"
	ctViewProps    = "application/vnd.openxmlformats-officedocument.presentationml.viewProps+xml"
	ctTableStyles  = "application/vnd.openxmlformats-officedocument.presentationml.tableStyles+xml"
	ctCoreProps    = "application/vnd.openxmlformats-package.core-properties+xml"
	ctExtProps     = "application/vnd.openxmlformats-officedocument.extended-properties+xml"
	ctCustomProps  = "application/vnd.openxmlformats-officedocument.custom-properties+xml"
	ctRels         = "application/vnd.openxmlformats-package.relationships+xml"
	ctChart        = "application/vnd.openxmlformats-officedocument.drawingml.chart+xml"
	ctNotesSlide   = "application/vnd.openxmlformats-officedocument.presentationml.notesSlide+xml"
	ctNotesMaster  = "application/vnd.openxmlformats-officedocument.presentationml.notesMaster+xml"
)

const xmlDecl = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n"

func writeXMLToZip(zw *zip.Writer, path string, v interface{}) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", path, err)
	}
	if _, err := fw.Write([]byte(xml.Header)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	enc := xml.NewEncoder(fw)
	enc.Indent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}

func writeRawXMLToZip(zw *zip.Writer, path string, content string) error {
	fw, err := zw.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s in zip: %w", path, err)
	}
	if _, err := fw.Write([]byte(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// --- Content Types ---

type xmlContentTypes struct {
	XMLName   xml.Name      `xml:"Types"`
	Xmlns     string        `xml:"xmlns,attr"`
	Defaults  []xmlDefault  `xml:"Default"`
	Overrides []xmlOverride `xml:"Override"`
}

type xmlDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

type xmlOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

func (w *PPTXWriter) writeContentTypes(zw *zip.Writer) error {
	ct := xmlContentTypes{
		Xmlns: nsContentTypes,
		Defaults: []xmlDefault{
			{Extension: "rels", ContentType: ctRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []xmlOverride{
			{PartName: "/ppt/presentation.xml", ContentType: ctPresentation},
			{PartName: "/ppt/presProps.xml", ContentType: ctPresProps},
			{PartName: "/ppt/viewProps.xml", ContentType: ctViewProps},
			{PartName: "/ppt/tableStyles.xml", ContentType: ctTableStyles},
			{PartName: "/ppt/slideMasters/slideMaster1.xml", ContentType: ctSlideMaster},
			{PartName: "/ppt/slideLayouts/slideLayout1.xml", ContentType: ctSlideLayout},
			{PartName: "/ppt/theme/theme1.xml", ContentType: ctTheme},
			{PartName: "/docProps/core.xml", ContentType: ctCoreProps},
			{PartName: "/docProps/app.xml", ContentType: ctExtProps},
		},
	}
	if w.hasCustomProperties() {
		ct.Overrides = append(ct.Overrides, xmlOverride{PartName: "/docProps/custom.xml", ContentType: ctCustomProps})
	}

	for i := range w.presentation.slides {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/slides/slide%d.xml", i+1),
			ContentType: ctSlide,
		})
	}

	seen := map[string]bool{"rels": true, "xml": true}
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			ds, ok := shape.(*DrawingShape)
			if !ok {
				continue
			}
			part := w.media[ds]
			if part == nil || seen[part.extension()] {
				continue
			}
			seen[part.extension()] = true
			ct.Defaults = append(ct.Defaults, xmlDefault{Extension: part.extension(), ContentType: part.mime})
		}
	}

	for i := 1; i <= len(w.chartIndex); i++ {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    fmt.Sprintf("/ppt/charts/chart%d.xml", i),
			ContentType: ctChart,
		})
	}

	if w.hasNotes() {
		ct.Overrides = append(ct.Overrides, xmlOverride{
			PartName:    "/ppt/notesMasters/notesMaster1.xml",
			ContentType: ctNotesMaster,
		})
		for i, slide := range w.presentation.slides {
			if slide.notes != "" {
				ct.Overrides = append(ct.Overrides, xmlOverride{
					PartName:    fmt.Sprintf("/ppt/notesSlides/notesSlide%d.xml", i+1),
					ContentType: ctNotesSlide,
				})
			}
		}
	}

	return writeXMLToZip(zw, "[Content_Types].xml", ct)
}

// --- Relationships ---

type xmlRelationships struct {
	XMLName       xml.Name          `xml:"Relationships"`
	Xmlns         string            `xml:"xmlns,attr"`
	Relationships []xmlRelationship `xml:"Relationship"`
}

type xmlRelationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

func (w *PPTXWriter) writeRootRels(zw *zip.Writer) error {
	rels := xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeOfficeDoc, Target: "ppt/presentation.xml"},
			{ID: "rId2", Type: relTypeCoreProps, Target: "docProps/core.xml"},
			{ID: "rId3", Type: relTypeExtProps, Target: "docProps/app.xml"},
		},
	}
	if w.hasCustomProperties() {
		rels.Relationships = append(rels.Relationships,
			xmlRelationship{ID: "rId4", Type: relTypeCustomProps, Target: "docProps/custom.xml"})
	}
	return writeXMLToZip(zw, "_rels/.rels", rels)
}

// presentationRels lists ppt/presentation.xml relationships in ID order.
// presentation.xml refers to the master as rId1 and slides as rId2..rIdN+1.
func (w *PPTXWriter) presentationRels() []xmlRelationship {
	var rels []xmlRelationship
	add := func(typ, target string) {
		rels = append(rels, xmlRelationship{ID: fmt.Sprintf("rId%d", len(rels)+1), Type: typ, Target: target})
	}
	add(relTypeSlideMaster, "slideMasters/slideMaster1.xml")
	for i := range w.presentation.slides {
		add(relTypeSlide, fmt.Sprintf("slides/slide%d.xml", i+1))
	}
	add(relTypePresProps, "presProps.xml")
	add(relTypeViewProps, "viewProps.xml")
	add(relTypeTableStyles, "tableStyles.xml")
	add(relTypeTheme, "theme/theme1.xml")
	if w.hasNotes() {
		add(relTypeNotesMaster, "notesMasters/notesMaster1.xml")
	}
	return rels
}

func (w *PPTXWriter) writePresentationRels(zw *zip.Writer) error {
	rels := xmlRelationships{
		Xmlns:         nsRelationships,
		Relationships: w.presentationRels(),
	}
	return writeXMLToZip(zw, "ppt/_rels/presentation.xml.rels", rels)
}

// --- Document Properties ---

func (w *PPTXWriter) writeAppProperties(zw *zip.Writer) error {
	props := w.presentation.properties
	content := fmt.Sprintf(xmlDecl+`<Properties xmlns="%s" xmlns:vt="%s">
  <Application>GoDeck</Application>
  <PresentationFormat>%s</PresentationFormat>
  <Company>%s</Company>
  <AppVersion>%s</AppVersion>
  <Slides>%d</Slides>
  <Notes>%d</Notes>
</Properties>`, nsExtProperties, nsDocPropsVTypes,
		xmlEscape(presentationFormatName(w.presentation.layout)),
		xmlEscape(props.Company), Version,
		len(w.presentation.slides), w.notesCount())
	return writeRawXMLToZip(zw, "docProps/app.xml", content)
}

func presentationFormatName(l *DocumentLayout) string {
	switch l.Name {
	case LayoutScreen16x9:
		return "On-screen Show (16:9)"
	case LayoutScreen4x3:
		return "On-screen Show (4:3)"
	case LayoutScreen16x10:
		return "On-screen Show (16:10)"
	case LayoutWidescreen:
		return "Widescreen"
	default:
		return "Custom"
	}
}

func (w *PPTXWriter) notesCount() int {
	n := 0
	for _, s := range w.presentation.slides {
		if s.notes != "" {
			n++
		}
	}
	return n
}

func (w *PPTXWriter) writeCoreProperties(zw *zip.Writer) error {
	props := w.presentation.properties
	content := fmt.Sprintf(xmlDecl+`<cp:coreProperties xmlns:cp="%s" xmlns:dc="%s" xmlns:dcterms="%s" xmlns:xsi="%s">
  <dc:creator>%s</dc:creator>
  <cp:lastModifiedBy>%s</cp:lastModifiedBy>
  <dc:title>%s</dc:title>
  <dc:description>%s</dc:description>
  <dc:subject>%s</dc:subject>
  <cp:keywords>%s</cp:keywords>
  <cp:category>%s</cp:category>
  <cp:revision>%s</cp:revision>
  <dcterms:created xsi:type="dcterms:W3CDTF">%s</dcterms:created>
  <dcterms:modified xsi:type="dcterms:W3CDTF">%s</dcterms:modified>
</cp:coreProperties>`,
		nsCoreProperties, nsDC, nsDCTerms, nsXSI,
		xmlEscape(props.Creator),
		xmlEscape(props.LastModifiedBy),
		xmlEscape(props.Title),
		xmlEscape(props.Description),
		xmlEscape(props.Subject),
		xmlEscape(props.Keywords),
		xmlEscape(props.Category),
		xmlEscape(props.Revision),
		props.Created.UTC().Format(time.RFC3339),
		props.Modified.UTC().Format(time.RFC3339),
	)
	return writeRawXMLToZip(zw, "docProps/core.xml", content)
}

func (w *PPTXWriter) hasCustomProperties() bool {
	return len(w.presentation.properties.customProps) > 0
}

func (w *PPTXWriter) writeCustomProperties(zw *zip.Writer) error {
	if !w.hasCustomProperties() {
		return nil
	}
	props := w.presentation.properties
	var sb strings.Builder
	sb.WriteString(xmlDecl)
	fmt.Fprintf(&sb, `<Properties xmlns="%s" xmlns:vt="%s">`, nsCustomProps, nsDocPropsVTypes)
	for i, name := range props.GetCustomProperties() {
		cp := props.customProps[name]
		fmt.Fprintf(&sb, "\n  <property fmtid=\"{D5CDD505-2E9C-101B-9397-08002B2CF9AE}\" pid=\"%d\" name=\"%s\">%s</property>",
			i+2, xmlEscape(name), customValueXML(cp))
	}
	sb.WriteString("\n</Properties>")
	return writeRawXMLToZip(zw, "docProps/custom.xml", sb.String())
}

func customValueXML(cp *CustomProperty) string {
	switch cp.Type {
	case PropertyTypeBoolean:
		if b, ok := cp.Value.(bool); ok && b {
			return "<vt:bool>true</vt:bool>"
		}
		return "<vt:bool>false</vt:bool>"
	case PropertyTypeInteger:
		return fmt.Sprintf("<vt:i4>%v</vt:i4>", cp.Value)
	case PropertyTypeFloat:
		return fmt.Sprintf("<vt:r8>%v</vt:r8>", cp.Value)
	case PropertyTypeDate:
		if t, ok := cp.Value.(time.Time); ok {
			return fmt.Sprintf("<vt:filetime>%s</vt:filetime>", t.UTC().Format(time.RFC3339))
		}
	}
	return fmt.Sprintf("<vt:lpwstr>%s</vt:lpwstr>", xmlEscape(fmt.Sprint(cp.Value)))
}

// xmlEscape escapes special XML characters using the standard library.
func xmlEscape(s string) string {
	var b strings.Builder
	if err := xml.EscapeText(&b, []byte(s)); err != nil {
		return s
	}
	return b.String()
}

// colorRGB safely extracts the 6-character RGB portion from an 8-character ARGB string.
// Returns "000000" if the input is invalid.
func colorRGB(c Color) string {
	if len(c.ARGB) >= 8 {
		return c.ARGB[2:8]
	}
	if len(c.ARGB) == 6 {
		return c.ARGB
	}
	return "000000"
}

// srgbXML renders a color, with an alpha child when it is not fully opaque.
func srgbXML(c Color) string {
	a := c.GetAlpha()
	if len(c.ARGB) == 8 && a < 255 {
		return fmt.Sprintf(`<a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>`, colorRGB(c), int(a)*100000/255)
	}
	return fmt.Sprintf(`<a:srgbClr val="%s"/>`, colorRGB(c))
}
