package pptx

import (
	"archive/zip"
	"fmt"
	"strings"
)

// slideRels holds the relationship IDs of one slide. It is planned before
// the slide XML is written so the shapes and the .rels part agree.
type slideRels struct {
	entries   []xmlRelationship
	images    map[*DrawingShape]string
	charts    map[*ChartShape]string
	shapeLink map[*BaseShape]string
	runLink   map[*TextRun]string
}

func (r *slideRels) add(typ, target, mode string) string {
	id := fmt.Sprintf("rId%d", len(r.entries)+1)
	r.entries = append(r.entries, xmlRelationship{ID: id, Type: typ, Target: target, TargetMode: mode})
	return id
}

func (r *slideRels) addRuns(paras []*Paragraph) {
	for _, para := range paras {
		for _, elem := range para.elements {
			if tr, ok := elem.(*TextRun); ok && tr.hyperlink != nil && tr.hyperlink.URL != "" {
				r.runLink[tr] = r.add(relTypeHyperlink, tr.hyperlink.URL, "External")
			}
		}
	}
}

// planSlideRels assigns relationship IDs in shape order. rId1 is always the layout.
func (w *PPTXWriter) planSlideRels(slide *Slide, slideNum int) *slideRels {
	r := &slideRels{
		images:    make(map[*DrawingShape]string),
		charts:    make(map[*ChartShape]string),
		shapeLink: make(map[*BaseShape]string),
		runLink:   make(map[*TextRun]string),
	}
	r.add(relTypeSlideLayout, "../slideLayouts/slideLayout1.xml", "")

	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *DrawingShape:
			if part := w.media[s]; part != nil {
				r.images[s] = r.add(relTypeImage,
					fmt.Sprintf("../media/image%d.%s", w.mediaIndex[s], part.extension()), "")
			}
		case *ChartShape:
			if idx, ok := w.chartIndex[s]; ok {
				r.charts[s] = r.add(relTypeChart, fmt.Sprintf("../charts/chart%d.xml", idx), "")
			}
		case *TableShape:
			for _, row := range s.rows {
				for _, cell := range row {
					r.addRuns(cell.paragraphs)
				}
			}
		}
		if b := shape.base(); b.hyperlink != nil && b.hyperlink.URL != "" {
			r.shapeLink[b] = r.add(relTypeHyperlink, b.hyperlink.URL, "External")
		}
		r.addRuns(shapeParagraphs(shape))
	}

	if slide.notes != "" {
		r.add(relTypeNotesSlide, fmt.Sprintf("../notesSlides/notesSlide%d.xml", slideNum), "")
	}
	return r
}

// shapeParagraphs returns the paragraphs of shapes with a text body.
func shapeParagraphs(shape Shape) []*Paragraph {
	switch s := shape.(type) {
	case *RichTextShape:
		return s.paragraphs
	case *AutoShape:
		return s.paragraphs
	}
	return nil
}

func (w *PPTXWriter) writeSlideRels(zw *zip.Writer, slideNum int, rels *slideRels) error {
	return writeXMLToZip(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", slideNum), xmlRelationships{
		Xmlns:         nsRelationships,
		Relationships: rels.entries,
	})
}

func (w *PPTXWriter) writeSlide(zw *zip.Writer, slide *Slide, slideNum int, rels *slideRels) error {
	var shapesXML strings.Builder
	shapeID := 2 // 1 is the group shape

	for _, shape := range slide.shapes {
		switch s := shape.(type) {
		case *RichTextShape:
			shapesXML.WriteString(w.writeRichTextShapeXML(s, &shapeID, rels))
		case *DrawingShape:
			shapesXML.WriteString(w.writeDrawingShapeXML(s, &shapeID, rels))
		case *TableShape:
			shapesXML.WriteString(w.writeTableShapeXML(s, &shapeID, rels))
		case *AutoShape:
			shapesXML.WriteString(w.writeAutoShapeXML(s, &shapeID, rels))
		case *LineShape:
			shapesXML.WriteString(w.writeLineShapeXML(s, &shapeID))
		case *ChartShape:
			shapesXML.WriteString(w.writeChartShapeXML(s, &shapeID, rels))
		}
	}
	if w.presentation.slideNumbers {
		shapesXML.WriteString(w.writeSlideNumberXML(&shapeID, slideNum))
	}

	bgXML := ""
	if slide.background != nil && slide.background.Type != FillNone {
		bgXML = "    <p:bg>\n      <p:bgPr>\n"
		bgXML += w.writeFillXML(slide.background)
		bgXML += "        <a:effectLst/>\n      </p:bgPr>\n    </p:bg>\n"
	}

	name := ""
	if slide.name != "" {
		name = fmt.Sprintf(` name="%s"`, xmlEscape(slide.name))
	}

	content := fmt.Sprintf(xmlDecl+`<p:sld xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld%s>
%s    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
%s    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:sld>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, name, bgXML, shapesXML.String())

	return writeRawXMLToZip(zw, fmt.Sprintf("ppt/slides/slide%d.xml", slideNum), content)
}

// cNvPrXML renders the non-visual properties element with an optional click link.
func cNvPrXML(id int, name string, b *BaseShape, rels *slideRels) string {
	descr := ""
	if b.description != "" {
		descr = fmt.Sprintf(` descr="%s"`, xmlEscape(b.description))
	}
	if rid, ok := rels.shapeLink[b]; ok {
		tooltip := ""
		if b.hyperlink.Tooltip != "" {
			tooltip = fmt.Sprintf(` tooltip="%s"`, xmlEscape(b.hyperlink.Tooltip))
		}
		return fmt.Sprintf(`<p:cNvPr id="%d" name="%s"%s><a:hlinkClick r:id="%s"%s/></p:cNvPr>`,
			id, xmlEscape(name), descr, rid, tooltip)
	}
	return fmt.Sprintf(`<p:cNvPr id="%d" name="%s"%s/>`, id, xmlEscape(name), descr)
}

func shapeName(b *BaseShape, kind string, id int) string {
	if b.name != "" {
		return b.name
	}
	return fmt.Sprintf("%s %d", kind, id)
}

// xfrmAttrs builds the rotation attribute for <a:xfrm>.
func xfrmAttrs(b *BaseShape) string {
	if b.rotation != 0 {
		return fmt.Sprintf(` rot="%d"`, b.rotation*60000)
	}
	return ""
}

// --- Text ---

func (w *PPTXWriter) writeRichTextShapeXML(s *RichTextShape, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s%s        </p:spPr>
%s      </p:sp>
`, cNvPrXML(id, shapeName(&s.BaseShape, "TextBox", id), &s.BaseShape, rels),
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		w.writeFillXML(s.fill), w.writeBorderXML(s.border), w.writeShadowXML(s.shadow),
		w.writeTextBodyXML(&s.textBody, rels))
}

func (w *PPTXWriter) writeTextBodyXML(t *textBody, rels *slideRels) string {
	var paragraphsXML strings.Builder
	for _, para := range t.paragraphs {
		paragraphsXML.WriteString(w.writeParagraphXML(para, rels))
	}
	return fmt.Sprintf(`        <p:txBody>
          <a:bodyPr wrap="%s"%s rtlCol="0">%s</a:bodyPr>
          <a:lstStyle/>
%s        </p:txBody>
`, boolToWrap(t.wordWrap), textAnchorAttr(t.textAnchor), autoFitXML(t.autoFit), paragraphsXML.String())
}

func boolToWrap(wrap bool) string {
	if wrap {
		return "square"
	}
	return "none"
}

// textAnchorAttr returns the anchor attribute string for <a:bodyPr>.
func textAnchorAttr(anchor TextAnchorType) string {
	if anchor == TextAnchorNone {
		return ""
	}
	return fmt.Sprintf(` anchor="%s"`, string(anchor))
}

func autoFitXML(fit AutoFitType) string {
	switch fit {
	case AutoFitNormal:
		return "<a:normAutofit/>"
	case AutoFitShape:
		return "<a:spAutoFit/>"
	}
	return ""
}

func (w *PPTXWriter) writeParagraphXML(para *Paragraph, rels *slideRels) string {
	attrs := ""
	if para.alignment.Horizontal != "" {
		attrs = fmt.Sprintf(` algn="%s"`, para.alignment.Horizontal)
	}
	if para.alignment.Level > 0 {
		attrs += fmt.Sprintf(` lvl="%d"`, para.alignment.Level)
	}
	if para.bullet != nil && para.bullet.Type != BulletTypeNone {
		attrs += ` marL="285750" indent="-285750"`
	}

	var elementsXML strings.Builder
	var lastFont *Font
	for _, elem := range para.elements {
		switch e := elem.(type) {
		case *TextRun:
			elementsXML.WriteString(w.writeTextRunXML(e, rels))
			lastFont = e.font
		case *BreakElement:
			elementsXML.WriteString("          <a:br/>\n")
		}
	}
	if lastFont != nil {
		// keeps empty trailing lines at the run size
		fmt.Fprintf(&elementsXML, "            <a:endParaRPr lang=\"en-US\" sz=\"%d\" dirty=\"0\"/>\n", lastFont.sizeHundredths())
	}

	spacing := ""
	if para.spaceBefore > 0 {
		spacing = fmt.Sprintf(`
              <a:spcBef><a:spcPts val="%d"/></a:spcBef>`, para.spaceBefore*100)
	}
	if para.spaceAfter > 0 {
		spacing += fmt.Sprintf(`
              <a:spcAft><a:spcPts val="%d"/></a:spcAft>`, para.spaceAfter*100)
	}

	bulletXML := ""
	if para.bullet != nil {
		bulletXML = w.writeBulletXML(para.bullet)
	}

	return fmt.Sprintf(`          <a:p>
            <a:pPr%s>%s%s
            </a:pPr>
%s          </a:p>
`, attrs, spacing, bulletXML, elementsXML.String())
}

func (w *PPTXWriter) writeTextRunXML(tr *TextRun, rels *slideRels) string {
	font := tr.font
	if font == nil {
		font = NewFont()
	}
	attrs := fmt.Sprintf(` lang="en-US" sz="%d" dirty="0"`, font.sizeHundredths())
	if font.Bold {
		attrs += ` b="1"`
	}
	if font.Italic {
		attrs += ` i="1"`
	}
	if font.Underline != UnderlineNone && font.Underline != "" {
		attrs += fmt.Sprintf(` u="%s"`, font.Underline)
	}

	solidFill := ""
	if font.Color.ARGB != "" {
		solidFill = fmt.Sprintf(`
                <a:solidFill>%s</a:solidFill>`, srgbXML(font.Color))
	}

	latin := ""
	if font.Name != "" {
		latin = fmt.Sprintf(`
                <a:latin typeface="%s"/>
                <a:cs typeface="%s"/>`, xmlEscape(font.Name), xmlEscape(font.Name))
	}

	hlink := ""
	if rid, ok := rels.runLink[tr]; ok {
		hlink = fmt.Sprintf(`
                <a:hlinkClick r:id="%s"/>`, rid)
	}

	return fmt.Sprintf(`            <a:r>
              <a:rPr%s>%s%s%s
              </a:rPr>
              <a:t>%s</a:t>
            </a:r>
`, attrs, solidFill, latin, hlink, xmlEscape(tr.text))
}

func (w *PPTXWriter) writeBulletXML(b *Bullet) string {
	if b.Type == BulletTypeNone {
		return "\n              <a:buNone/>"
	}

	var sb strings.Builder
	if b.Color != nil {
		fmt.Fprintf(&sb, "\n              <a:buClr>%s</a:buClr>", srgbXML(*b.Color))
	}
	if b.Size != 100 && b.Size > 0 {
		fmt.Fprintf(&sb, "\n              <a:buSzPct val=\"%d000\"/>", b.Size)
	}
	switch b.Type {
	case BulletTypeChar:
		if b.Font != "" {
			fmt.Fprintf(&sb, "\n              <a:buFont typeface=\"%s\"/>", xmlEscape(b.Font))
		}
		fmt.Fprintf(&sb, "\n              <a:buChar char=\"%s\"/>", xmlEscape(b.Style))
	case BulletTypeNumeric:
		fmt.Fprintf(&sb, "\n              <a:buAutoNum type=\"%s\" startAt=\"%d\"/>", b.NumFormat, b.StartAt)
	}
	return sb.String()
}

// writeSlideNumberXML renders the slide number field in the bottom right corner.
func (w *PPTXWriter) writeSlideNumberXML(shapeID *int, slideNum int) string {
	id := *shapeID
	*shapeID++

	l := w.presentation.layout
	cx, cy := Inch(1), Inch(0.35)
	x, y := l.CX-cx-Inch(0.2), l.CY-cy-Inch(0.1)

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="%d" name="Slide Number %d"/>
          <p:cNvSpPr txBox="1"/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
        </p:spPr>
        <p:txBody>
          <a:bodyPr wrap="none" anchor="ctr" rtlCol="0"/>
          <a:lstStyle/>
          <a:p>
            <a:pPr algn="r"/>
            <a:fld id="{B6F15528-21DE-4FAA-801E-634DDDAF4B2B}" type="slidenum">
              <a:rPr lang="en-US" sz="1000" dirty="0">
                <a:solidFill><a:srgbClr val="%s"/></a:solidFill>
              </a:rPr>
              <a:t>%d</a:t>
            </a:fld>
          </a:p>
        </p:txBody>
      </p:sp>
`, id, slideNum, x, y, cx, cy, colorRGB(w.presentation.theme.Dark2), slideNum)
}

// --- Pictures ---

func (w *PPTXWriter) writeDrawingShapeXML(s *DrawingShape, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	rid, ok := rels.images[s]
	if !ok {
		return ""
	}
	part := w.media[s]
	geo := fitPicture(s.fit, s.offsetX, s.offsetY, s.width, s.height, part.width, part.height)

	alphaXML := ""
	if s.alpha > 0 {
		alphaXML = fmt.Sprintf(`
            <a:alphaModFix amt="%d"/>
          `, s.alpha)
	}
	srcRect := ""
	if geo.cropL != 0 || geo.cropT != 0 || geo.cropR != 0 || geo.cropB != 0 {
		srcRect = fmt.Sprintf(`
          <a:srcRect l="%d" t="%d" r="%d" b="%d"/>`, geo.cropL, geo.cropT, geo.cropR, geo.cropB)
	}

	return fmt.Sprintf(`      <p:pic>
        <p:nvPicPr>
          %s
          <p:cNvPicPr>
            <a:picLocks noChangeAspect="1"/>
          </p:cNvPicPr>
          <p:nvPr/>
        </p:nvPicPr>
        <p:blipFill>
          <a:blip r:embed="%s">%s</a:blip>%s
          <a:stretch>
            <a:fillRect/>
          </a:stretch>
        </p:blipFill>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="rect">
            <a:avLst/>
          </a:prstGeom>
%s%s        </p:spPr>
      </p:pic>
`, cNvPrXML(id, shapeName(&s.BaseShape, "Picture", id), &s.BaseShape, rels),
		rid, alphaXML, srcRect,
		xfrmAttrs(&s.BaseShape),
		geo.x, geo.y, geo.cx, geo.cy,
		w.writeBorderXML(s.border), w.writeShadowXML(s.shadow))
}

func (w *PPTXWriter) writeMedia(zw *zip.Writer) error {
	for _, slide := range w.presentation.slides {
		for _, shape := range slide.shapes {
			ds, ok := shape.(*DrawingShape)
			if !ok {
				continue
			}
			part := w.media[ds]
			if part == nil {
				continue
			}
			fw, err := zw.Create(fmt.Sprintf("ppt/media/image%d.%s", w.mediaIndex[ds], part.extension()))
			if err != nil {
				return fmt.Errorf("failed to create media part: %w", err)
			}
			if _, err := fw.Write(part.data); err != nil {
				return fmt.Errorf("failed to write media part: %w", err)
			}
		}
	}
	return nil
}

// --- Auto shapes and lines ---

func (w *PPTXWriter) writeAutoShapeXML(s *AutoShape, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	textXML := ""
	if s.hasText() {
		textXML = w.writeTextBodyXML(&s.textBody, rels)
	}

	return fmt.Sprintf(`      <p:sp>
        <p:nvSpPr>
          %s
          <p:cNvSpPr/>
          <p:nvPr/>
        </p:nvSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="%s">
            <a:avLst/>
          </a:prstGeom>
%s%s%s        </p:spPr>
%s      </p:sp>
`, cNvPrXML(id, shapeName(&s.BaseShape, "Shape", id), &s.BaseShape, rels),
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		s.shapeType,
		w.writeFillXML(s.fill), w.writeBorderXML(s.border), w.writeShadowXML(s.shadow),
		textXML)
}

func (w *PPTXWriter) writeLineShapeXML(s *LineShape, shapeID *int) string {
	id := *shapeID
	*shapeID++

	name := s.name
	if name == "" {
		name = fmt.Sprintf("Line %d", id)
	}

	return fmt.Sprintf(`      <p:cxnSp>
        <p:nvCxnSpPr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvCxnSpPr/>
          <p:nvPr/>
        </p:nvCxnSpPr>
        <p:spPr>
          <a:xfrm%s>
            <a:off x="%d" y="%d"/>
            <a:ext cx="%d" cy="%d"/>
          </a:xfrm>
          <a:prstGeom prst="line">
            <a:avLst/>
          </a:prstGeom>
          <a:ln w="%d">
            <a:solidFill>%s</a:solidFill>%s
          </a:ln>
        </p:spPr>
      </p:cxnSp>
`, id, xmlEscape(name),
		xfrmAttrs(&s.BaseShape),
		s.offsetX, s.offsetY, s.width, s.height,
		s.lineWidth, srgbXML(s.lineColor), dashXML(s.lineStyle))
}

func dashXML(style BorderStyle) string {
	switch style {
	case BorderDash:
		return `<a:prstDash val="dash"/>`
	case BorderDot:
		return `<a:prstDash val="sysDot"/>`
	}
	return ""
}

// --- Tables ---

func (w *PPTXWriter) writeTableShapeXML(s *TableShape, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	colWidth := s.width / int64(s.numCols)
	rowHeight := s.height / int64(s.numRows)

	var gridCols strings.Builder
	for i := 0; i < s.numCols; i++ {
		fmt.Fprintf(&gridCols, "                <a:gridCol w=\"%d\"/>\n", colWidth)
	}

	var rowsXML strings.Builder
	for i := 0; i < s.numRows; i++ {
		fmt.Fprintf(&rowsXML, "              <a:tr h=\"%d\">\n", rowHeight)
		for j := 0; j < s.numCols; j++ {
			cell := s.rows[i][j]
			var cellText strings.Builder
			for _, para := range cell.paragraphs {
				cellText.WriteString(w.writeParagraphXML(para, rels))
			}
			fmt.Fprintf(&rowsXML, `                <a:tc>
                  <a:txBody>
                    <a:bodyPr/>
                    <a:lstStyle/>
%s                  </a:txBody>
                  <a:tcPr anchor="ctr">
%s                  </a:tcPr>
                </a:tc>
`, cellText.String(), w.writeFillXML(cell.fill))
		}
		rowsXML.WriteString("              </a:tr>\n")
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="http://schemas.openxmlformats.org/drawingml/2006/table">
            <a:tbl>
              <a:tblPr firstRow="1" bandRow="1"/>
              <a:tblGrid>
%s              </a:tblGrid>
%s            </a:tbl>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, xmlEscape(shapeName(&s.BaseShape, "Table", id)),
		s.offsetX, s.offsetY, s.width, s.height,
		gridCols.String(), rowsXML.String())
}

// --- Charts ---

func (w *PPTXWriter) writeChartShapeXML(s *ChartShape, shapeID *int, rels *slideRels) string {
	id := *shapeID
	*shapeID++

	rid, ok := rels.charts[s]
	if !ok {
		return ""
	}

	return fmt.Sprintf(`      <p:graphicFrame>
        <p:nvGraphicFramePr>
          <p:cNvPr id="%d" name="%s"/>
          <p:cNvGraphicFramePr>
            <a:graphicFrameLocks noGrp="1"/>
          </p:cNvGraphicFramePr>
          <p:nvPr/>
        </p:nvGraphicFramePr>
        <p:xfrm>
          <a:off x="%d" y="%d"/>
          <a:ext cx="%d" cy="%d"/>
        </p:xfrm>
        <a:graphic>
          <a:graphicData uri="%s">
            <c:chart xmlns:c="%s" r:id="%s"/>
          </a:graphicData>
        </a:graphic>
      </p:graphicFrame>
`, id, xmlEscape(shapeName(&s.BaseShape, "Chart", id)),
		s.offsetX, s.offsetY, s.width, s.height,
		nsChart, nsChart, rid)
}

// --- Fill, border and shadow ---

func (w *PPTXWriter) writeFillXML(f *Fill) string {
	if f == nil {
		return ""
	}
	switch f.Type {
	case FillSolid:
		return fmt.Sprintf("          <a:solidFill>%s</a:solidFill>\n", srgbXML(f.Color))
	default:
		return ""
	}
}

func (w *PPTXWriter) writeBorderXML(b *Border) string {
	if b == nil || b.Style == BorderNone || b.Width <= 0 {
		return ""
	}
	return fmt.Sprintf("          <a:ln w=\"%d\"><a:solidFill>%s</a:solidFill>%s</a:ln>\n",
		b.Width, srgbXML(b.Color), dashXML(b.Style))
}

func (w *PPTXWriter) writeShadowXML(s *Shadow) string {
	if s == nil || !s.Visible {
		return ""
	}
	return fmt.Sprintf(`          <a:effectLst>
            <a:outerShdw blurRad="%d" dist="%d" dir="%d" algn="bl" rotWithShape="0">
              <a:srgbClr val="%s"><a:alpha val="%d"/></a:srgbClr>
            </a:outerShdw>
          </a:effectLst>
`, int64(s.BlurRadius)*emuPerPoint, int64(s.Distance)*emuPerPoint, s.Direction*60000,
		colorRGB(s.Color), s.Alpha*1000)
}

// --- Notes ---

func (w *PPTXWriter) writeNotesSlide(zw *zip.Writer, slide *Slide, slideNum int) error {
	var paras strings.Builder
	for _, line := range strings.Split(slide.notes, "\n") {
		fmt.Fprintf(&paras, `          <a:p>
            <a:r>
              <a:rPr lang="en-US" dirty="0"/>
              <a:t>%s</a:t>
            </a:r>
          </a:p>
`, xmlEscape(line))
	}

	content := fmt.Sprintf(xmlDecl+`<p:notes xmlns:a="%s" xmlns:r="%s" xmlns:p="%s">
  <p:cSld>
    <p:spTree>
      <p:nvGrpSpPr>
        <p:cNvPr id="1" name=""/>
        <p:cNvGrpSpPr/>
        <p:nvPr/>
      </p:nvGrpSpPr>
      <p:grpSpPr>
        <a:xfrm>
          <a:off x="0" y="0"/>
          <a:ext cx="0" cy="0"/>
          <a:chOff x="0" y="0"/>
          <a:chExt cx="0" cy="0"/>
        </a:xfrm>
      </p:grpSpPr>
      <p:sp>
        <p:nvSpPr>
          <p:cNvPr id="2" name="Notes Placeholder 1"/>
          <p:cNvSpPr>
            <a:spLocks noGrp="1"/>
          </p:cNvSpPr>
          <p:nvPr>
            <p:ph type="body" idx="1"/>
          </p:nvPr>
        </p:nvSpPr>
        <p:spPr/>
        <p:txBody>
          <a:bodyPr/>
          <a:lstStyle/>
%s        </p:txBody>
      </p:sp>
    </p:spTree>
  </p:cSld>
  <p:clrMapOvr>
    <a:masterClrMapping/>
  </p:clrMapOvr>
</p:notes>`, nsDrawingML, nsOfficeDocRels, nsPresentationML, paras.String())

	if err := writeRawXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/notesSlide%d.xml", slideNum), content); err != nil {
		return err
	}

	return writeXMLToZip(zw, fmt.Sprintf("ppt/notesSlides/_rels/notesSlide%d.xml.rels", slideNum), xmlRelationships{
		Xmlns: nsRelationships,
		Relationships: []xmlRelationship{
			{ID: "rId1", Type: relTypeNotesMaster, Target: "../notesMasters/notesMaster1.xml"},
			{ID: "rId2", Type: relTypeSlide, Target: fmt.Sprintf("../slides/slide%d.xml", slideNum)},
		},
	})
}
