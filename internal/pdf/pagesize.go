package pdf

import (
	"github.com/go-pdf/fpdf"

	"github.com/NIGHTWALKER3/NW-Photo-To-Pdf-Converter-Bot/internal/models"
)

// pageSizes maps each preset to its portrait dimensions in points.
var pageSizes = map[models.PageSize]fpdf.SizeType{
	models.PageA3:      {Wd: 842, Ht: 1191},
	models.PageA4:      {Wd: 595, Ht: 842},
	models.PageA5:      {Wd: 420, Ht: 595},
	models.PageLetter:  {Wd: 612, Ht: 792},
	models.PageLegal:   {Wd: 612, Ht: 1008},
	models.PageTabloid: {Wd: 792, Ht: 1224},
}

func pageSizeOf(ps models.PageSize) fpdf.SizeType {
	if size, ok := pageSizes[ps]; ok {
		return size
	}
	return pageSizes[models.PageA4]
}

// Dimensions returns the page width and height in points for a preset.
// Unknown presets fall back to A4.
func Dimensions(ps models.PageSize) (width, height float64) {
	size := pageSizeOf(ps)
	return size.Wd, size.Ht
}
