package policy

// serviceKind picks which shared candidate list a tracked service starts
// from when no curated override applies.
type serviceKind int

const (
	kindProxy  serviceKind = iota // generic service list
	kindDirect                    // direct-preferring list
	kindReject                    // block list (ads)
)

type service struct {
	name string
	kind serviceKind
	icon string
}

// trackedServices is the fixed, ordered table of external services that get
// their own policy group. Order here is emission order.
//
// 哔哩哔哩 / 巴哈姆特 / NicoNico additionally take curated region-first
// lists when the matching country groups surfaced; see serviceProxies.
var trackedServices = []service{
	{name: "电报消息", kind: kindProxy, icon: iconBase + "Telegram.png"},
	{name: "油管视频", kind: kindProxy, icon: iconBase + "YouTube.png"},
	{name: "奈飞视频", kind: kindProxy, icon: iconBase + "Netflix.png"},
	{name: "迪士尼", kind: kindProxy, icon: iconBase + "Disney+.png"},
	{name: "OpenAI", kind: kindProxy, icon: iconBase + "ChatGPT.png"},
	{name: "声田音乐", kind: kindProxy, icon: iconBase + "Spotify.png"},
	{name: "TikTok", kind: kindProxy, icon: iconBase + "TikTok.png"},
	{name: "哔哩哔哩", kind: kindDirect, icon: iconBase + "bilibili.png"},
	{name: "巴哈姆特", kind: kindProxy, icon: iconBase + "Bahamut.png"},
	{name: "NicoNico", kind: kindProxy, icon: iconBase + "NICONICO.png"},
	{name: "谷歌服务", kind: kindProxy, icon: iconBase + "Google_Search.png"},
	{name: "微软服务", kind: kindDirect, icon: iconBase + "Microsoft.png"},
	{name: "苹果服务", kind: kindDirect, icon: iconBase + "Apple_1.png"},
	{name: "游戏平台", kind: kindProxy, icon: iconBase + "Game.png"},
	{name: "国内网站", kind: kindDirect, icon: iconBase + "StreamingCN.png"},
	{name: "广告拦截", kind: kindReject, icon: iconBase + "Advertising.png"},
}
