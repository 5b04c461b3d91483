package vision

import (
	"math"
	"sort"
)

// 图像业务类别
const (
	CategoryPromotional        = "promotional"
	CategoryProductDisplay     = "product_display"
	CategoryLifestyle          = "lifestyle"
	CategoryIngredientShowcase = "ingredient_showcase"
	CategoryMedicalContext     = "medical_context"
	CategoryBeforeAfter        = "before_after"
	CategoryTextHeavy          = "text_heavy"
	CategoryUnknown            = "unknown"
)

const DefaultConfidenceThreshold = 0.3

// Detection 单个检测框
type Detection struct {
	ClassName  string  `json:"class_name"`
	Confidence float64 `json:"confidence"`
}

// Result 规则分类结果
type Result struct {
	Category           string      `json:"category"`
	CategoryConfidence float64     `json:"category_confidence"`
	Confidence         float64     `json:"confidence"`
	Tags               []string    `json:"tags"`
	Implications       []string    `json:"implications"`
	Detections         []Detection `json:"detections"`
}

// relevantClasses YOLO 类别到业务标签的映射，不在表内的类别一律忽略
var relevantClasses = map[string][]string{
	"person": {"person", "human"},

	"bottle":     {"product", "container", "bottle"},
	"cup":        {"product", "container", "cup"},
	"wine glass": {"product", "container", "glass"},
	"handbag":    {"cosmetic", "accessory", "bag"},
	"suitcase":   {"storage", "travel"},

	"book":       {"documentation", "manual"},
	"cell phone": {"communication", "tech"},
	"remote":     {"device", "electronic"},

	"chair":        {"setting", "office"},
	"dining table": {"setting", "home"},
	"bed":          {"setting", "medical"},
	"toilet":       {"setting", "bathroom"},
	"tv":           {"setting", "home"},

	"banana":   {"ingredient", "food", "fruit"},
	"apple":    {"ingredient", "food", "fruit"},
	"orange":   {"ingredient", "food", "fruit"},
	"broccoli": {"ingredient", "food", "vegetable"},
	"carrot":   {"ingredient", "food", "vegetable"},

	"dog":  {"animal", "pet"},
	"cat":  {"animal", "pet"},
	"bird": {"animal", "wildlife"},
}

var productClasses = map[string]bool{"bottle": true, "cup": true, "handbag": true, "wine glass": true}
var foodClasses = map[string]bool{"banana": true, "apple": true, "orange": true, "broccoli": true, "carrot": true}
var settingClasses = map[string]bool{"bed": true, "chair": true}

var implications = map[string][]string{
	CategoryPromotional: {
		"Good for brand storytelling and marketing",
		"Shows product in use context",
		"Effective for social media engagement",
	},
	CategoryProductDisplay: {
		"Pure product showcase - good for catalogs",
		"Focus on product features and details",
		"Useful for technical documentation",
	},
	CategoryLifestyle: {
		"Builds emotional brand connection",
		"Focus on user experience and benefits",
		"Good for long-term brand building",
	},
	CategoryIngredientShowcase: {
		"Highlights natural/organic ingredients",
		"Supports health and wellness claims",
		"Appeals to health-conscious consumers",
	},
	CategoryMedicalContext: {
		"Establishes professional/medical authority",
		"Builds trust through clinical context",
		"Appeals to health professionals",
	},
}

type Classifier struct {
	threshold float64
}

func NewClassifier(threshold float64) *Classifier {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	return &Classifier{threshold: threshold}
}

// Classify 对检测结果应用分类规则。低置信度与域外类别先过滤，
// 过滤后为空时返回固定的 unknown 结果。
func (c *Classifier) Classify(detections []Detection) Result {
	kept := make([]Detection, 0, len(detections))
	for _, d := range detections {
		if d.Confidence >= c.threshold && len(relevantClasses[d.ClassName]) > 0 {
			kept = append(kept, d)
		}
	}
	if len(kept) == 0 {
		return Result{
			Category:     CategoryUnknown,
			Confidence:   0,
			Tags:         []string{"no_detections", "low_confidence"},
			Implications: []string{"No relevant objects detected"},
			Detections:   []Detection{},
		}
	}

	category, categoryConfidence := categorize(kept)
	return Result{
		Category:           category,
		CategoryConfidence: categoryConfidence,
		Confidence:         overallConfidence(kept),
		Tags:               businessTags(kept),
		Implications:       implications[category],
		Detections:         kept,
	}
}

// categorize 规则表按序匹配，首条命中生效
func categorize(detections []Detection) (string, float64) {
	counts := make(map[string]int)
	for _, d := range detections {
		counts[d.ClassName]++
	}

	hasPerson := counts["person"] > 0
	hasProduct, hasFood, hasSetting := false, false, false
	for name := range counts {
		hasProduct = hasProduct || productClasses[name]
		hasFood = hasFood || foodClasses[name]
		hasSetting = hasSetting || settingClasses[name]
	}
	hasMedicalSetting := hasSetting && hasPerson

	switch {
	case hasPerson && hasProduct:
		return CategoryPromotional, 0.8
	case hasProduct:
		return CategoryProductDisplay, 0.7
	case hasPerson && !hasMedicalSetting:
		return CategoryLifestyle, 0.6
	case hasFood:
		return CategoryIngredientShowcase, 0.7
	case hasMedicalSetting:
		return CategoryMedicalContext, 0.6
	case counts["person"] >= 2:
		return CategoryBeforeAfter, 0.5
	default:
		return CategoryUnknown, 0.3
	}
}

// overallConfidence 平均置信度加多目标奖励，封顶 1.0，保留三位小数
func overallConfidence(detections []Detection) float64 {
	sum, highCount := 0.0, 0
	for _, d := range detections {
		sum += d.Confidence
		if d.Confidence > 0.7 {
			highCount++
		}
	}
	base := sum / float64(len(detections))
	bonus := math.Min(float64(highCount)*0.05, 0.2)
	return math.Round(math.Min(base+bonus, 1.0)*1000) / 1000
}

// businessTags 聚合标签并附加置信度档位，结果排序保证确定性
func businessTags(detections []Detection) []string {
	set := make(map[string]struct{})
	sum := 0.0
	for _, d := range detections {
		sum += d.Confidence
		for _, tag := range relevantClasses[d.ClassName] {
			set[tag] = struct{}{}
		}
	}
	avg := sum / float64(len(detections))
	switch {
	case avg > 0.8:
		set["high_confidence"] = struct{}{}
	case avg > 0.5:
		set["medium_confidence"] = struct{}{}
	default:
		set["low_confidence"] = struct{}{}
	}

	tags := make([]string, 0, len(set))
	for tag := range set {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}
