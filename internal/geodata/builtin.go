package geodata

import "github.com/John-Robertt/policygen-go/internal/model"

const iconBase = "https://raw.githubusercontent.com/Koolson/Qure/master/IconSet/Color/"

// builtinSpec is the shipped country table. Weighted entries surface first;
// the unweighted tail keeps declaration order among itself.
var builtinSpec = Spec{
	Countries: []model.CountryMeta{
		{Key: "HK", GroupName: "香港节点", Weight: 10, Pattern: `(?i)香港|🇭🇰|\bHK\b|Hong\s?Kong`, Icon: iconBase + "Hong_Kong.png"},
		{Key: "TW", GroupName: "台湾节点", Weight: 20, Pattern: `(?i)台湾|🇹🇼|\bTW\b|Taiwan`, Icon: iconBase + "Taiwan.png"},
		{Key: "SG", GroupName: "新加坡节点", Weight: 30, Pattern: `(?i)新加坡|狮城|🇸🇬|\bSG\b|Singapore`, Icon: iconBase + "Singapore.png"},
		{Key: "JP", GroupName: "日本节点", Weight: 40, Pattern: `(?i)日本|东京|大阪|🇯🇵|\bJP\b|Japan`, Icon: iconBase + "Japan.png"},
		{Key: "US", GroupName: "美国节点", Weight: 50, Pattern: `(?i)美国|🇺🇸|\bUS\b|United\s?States|America`, Icon: iconBase + "United_States.png"},
		{Key: "KR", GroupName: "韩国节点", Pattern: `(?i)韩国|首尔|🇰🇷|\bKR\b|Korea`, Icon: iconBase + "Korea.png"},
		{Key: "UK", GroupName: "英国节点", Pattern: `(?i)英国|伦敦|🇬🇧|\bUK\b|\bGB\b|United\s?Kingdom`, Icon: iconBase + "United_Kingdom.png"},
		{Key: "DE", GroupName: "德国节点", Pattern: `(?i)德国|法兰克福|🇩🇪|\bDE\b|Germany`, Icon: iconBase + "Germany.png"},
	},
	LandingPattern: `(?i)落地|landing`,
	LowCostPattern: `(?i)省流|低倍率|大流量|实验性|x0\.[0-9]|0\.[0-9]x`,
}

var defaultTable = func() *Table {
	t, err := Compile(builtinSpec)
	if err != nil {
		// Static configuration defect: nothing sensible can run.
		panic(err)
	}
	return t
}()

// Default returns the compiled builtin table. It never fails after package
// initialization.
func Default() *Table { return defaultTable }
