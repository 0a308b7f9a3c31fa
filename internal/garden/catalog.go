package garden

// ==================== 苗床尺寸 ====================

// BedSize 苗床尺寸 (英尺)
type BedSize string

const (
	BedSize2x2 BedSize = "2x2"
	BedSize4x4 BedSize = "4x4"
	BedSize4x8 BedSize = "4x8"
)

// BedSizes 固定展示顺序
var BedSizes = []BedSize{BedSize2x2, BedSize4x4, BedSize4x8}

// MaxBedChoice 表单下拉框的上限，只是 UI 便利，服务端不强制
const MaxBedChoice = 10

// ==================== 蔬菜目录 ====================

var vegetableCatalog = []string{
	"Tomatoes", "Lettuce", "Carrots", "Peppers", "Onions", "Spinach",
	"Radishes", "Beans", "Peas", "Cucumber", "Zucchini", "Broccoli",
	"Cauliflower", "Kale", "Swiss Chard", "Beets", "Corn", "Squash",
	"Herbs (Basil, Cilantro, Parsley)", "Eggplant",
}

// Vegetables 返回目录副本，按目录顺序
func Vegetables() []string {
	out := make([]string, len(vegetableCatalog))
	copy(out, vegetableCatalog)
	return out
}

// CatalogIndex 返回蔬菜在目录中的位置，不存在返回 -1
func CatalogIndex(name string) int {
	for i, v := range vegetableCatalog {
		if v == name {
			return i
		}
	}
	return -1
}
