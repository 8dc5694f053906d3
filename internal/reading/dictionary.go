package reading

import "strings"

// dictionary maps the essays' vocabulary to Chinese glosses.
var dictionary = map[string]string{
	"i": "我", "you": "你", "he": "他", "she": "她", "we": "我们", "they": "他们",

	"did": "做了(do的过去式)", "do": "做",
	"went": "去了(go的过去式)", "go": "去",
	"played": "玩了(play的过去式)", "play": "玩",
	"watched": "看了(watch的过去式)", "watch": "看",
	"was": "是(am/is的过去式)", "were": "是(are的过去式)",
	"are": "是", "am": "是", "is": "是",
	"took": "乘坐(take的过去式)", "take": "乘坐",
	"swam": "游泳(swim的过去式)", "swim": "游泳",
	"ate": "吃了(eat的过去式)", "eat": "吃",
	"had": "度过(have的过去式)", "have": "有/度过",
	"get": "得到/起床", "study": "学习", "come": "来",

	"things": "事情", "weekend": "周末", "park": "公园", "parents": "父母",
	"friend": "朋友", "football": "足球", "homework": "家庭作业", "tv": "电视",
	"summer": "夏天", "plane": "飞机", "sea": "大海", "beach": "沙滩",
	"seafood": "海鲜", "fun": "乐趣", "school": "学校", "breakfast": "早餐",
	"bus": "公交车", "english": "英语", "math": "数学", "science": "科学",

	"many": "许多", "very": "非常", "busy": "忙碌", "happy": "开心的", "excited": "兴奋的",

	"to": "到", "with": "和", "and": "和", "but": "但是", "in": "在",
	"on": "在...上", "at": "在", "of": "的", "about": "关于", "by": "通过",

	"the": "这/那", "my": "我的", "your": "你的", "a": "一(个)",

	"last": "上一个", "july": "七月", "morning": "早上", "evening": "晚上",

	"how": "怎么样", "what": "什么",

	"dear": "亲爱的", "carolin": "卡罗琳", "sanya": "三亚", "there": "那里",
	"dad": "爸爸", "lot": "许多", "love": "爱你的", "tina": "蒂娜",
	"seven": "七", "four": "四", "every": "每个", "lunch": "午餐",
	"time": "时间", "home": "家", "family": "家庭", "friends": "朋友们",
	"o'clock": "点钟",
}

// Define looks up the Chinese gloss for a word, case-insensitively.
func Define(word string) (string, bool) {
	gloss, ok := dictionary[strings.ToLower(word)]
	return gloss, ok
}
