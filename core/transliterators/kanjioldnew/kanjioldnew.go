// Package kanjioldnew replaces traditional (kyujitai) kanji with their
// simplified (shinjitai) forms. A kyujitai followed by the first
// ideographic variation selector keeps the selector.
package kanjioldnew

import (
	"github.com/FocuswithJustin/yosina/core/chars"
	"github.com/FocuswithJustin/yosina/core/transliterators/table"
)

const vs17 = "\U000E0100"

// pairs alternates an old form and its new form.
const pairs = "" +
	"亞亜惡悪壓圧圍囲爲為醫医壹壱稻稲飮飲隱隠營営榮栄衞衛驛駅圓円鹽塩緣縁艷艶應応歐欧" +
	"毆殴櫻桜奧奥假仮價価畫画會会懷懐繪絵擴拡殼殻覺覚學学嶽岳樂楽渴渇卷巻陷陥勸勧寬寛" +
	"關関觀観歡歓氣気龜亀僞偽戲戯犧犠舊旧據拠擧挙峽峡挾挟狹狭曉暁區区驅駆勳勲徑径惠恵" +
	"溪渓經経繼継莖茎螢蛍輕軽鷄鶏藝芸缺欠儉倹劍剣圈圏檢検權権獻献縣県險険顯顕驗験嚴厳" +
	"效効廣広恆恒鑛鉱號号國国黑黒濟済碎砕齋斎劑剤雜雑參参棧桟蠶蚕慘惨贊賛殘残絲糸齒歯" +
	"兒児辭辞濕湿實実舍舎寫写釋釈壽寿收収從従澁渋獸獣縱縦肅粛處処敍叙將将燒焼稱称證証" +
	"乘乗剩剰壤壌孃嬢條条淨浄疊畳讓譲釀醸觸触寢寝愼慎眞真盡尽圖図粹粋醉酔隨随髓髄數数" +
	"樞枢聲声靜静齊斉攝摂竊窃專専戰戦淺浅潛潜纖繊錢銭禪禅雙双壯壮搜捜插挿爭争總総聰聡" +
	"莊荘裝装騷騒藏蔵臟臓屬属續続墮堕體体對対帶帯滯滞臺台瀧滝擇択澤沢單単擔担膽胆團団" +
	"彈弾斷断癡痴晝昼蟲虫鑄鋳廳庁聽聴鎭鎮遞逓鐵鉄轉転點点傳伝黨党盜盗燈灯當当鬪闘德徳" +
	"獨独讀読屆届繩縄貳弐腦脳霸覇廢廃拜拝賣売麥麦發発髮髪拔抜蠻蛮祕秘濱浜甁瓶拂払佛仏" +
	"竝並變変邊辺辨弁瓣弁辯弁舖舗步歩寶宝豐豊沒没飜翻萬万滿満默黙彌弥譯訳藥薬與与豫予" +
	"餘余譽誉搖揺樣様謠謡來来賴頼亂乱覽覧龍竜兩両獵猟綠緑壘塁淚涙勵励禮礼隸隷靈霊齡齢" +
	"戀恋爐炉勞労樓楼錄録灣湾"

var oldNew = table.NewLazy("kanji-old-new", func() table.Table {
	rs := []rune(pairs)
	t := make(table.Table, len(rs))
	for i := 0; i+1 < len(rs); i += 2 {
		oldForm, newForm := string(rs[i]), string(rs[i+1])
		t[oldForm] = newForm
		t[oldForm+vs17] = newForm + vs17
	}
	return t
})

// Pairs returns the old and new forms known to the stage, in table order.
func Pairs() [][2]string {
	rs := []rune(pairs)
	out := make([][2]string, 0, len(rs)/2)
	for i := 0; i+1 < len(rs); i += 2 {
		out = append(out, [2]string{string(rs[i]), string(rs[i+1])})
	}
	return out
}

// Transliterator replaces old kanji forms.
type Transliterator struct {
	t *table.Transliterator
}

// New returns the kanji old/new stage.
func New() *Transliterator {
	return &Transliterator{t: oldNew.Get()}
}

// Transliterate implements the stage contract.
func (t *Transliterator) Transliterate(in []*chars.Char) []*chars.Char {
	return t.t.Transliterate(in)
}

// Table returns the mapping table t applies.
func (t *Transliterator) Table() *table.Transliterator {
	return t.t
}
