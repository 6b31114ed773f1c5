package config

import "api-security-news/pkg/domain"

var defaultFeeds = []domain.FeedSource{
	{URL: "https://feeds.feedburner.com/TheHackersNews", Label: "The Hacker News"},
	{URL: "https://www.bleepingcomputer.com/feed/", Label: "BleepingComputer"},
	{URL: "https://www.securityweek.com/feed/", Label: "SecurityWeek"},
	{URL: "https://www.darkreading.com/rss.xml", Label: "Dark Reading"},
	{URL: "https://krebsonsecurity.com/feed/", Label: "Krebs on Security"},
	{URL: "https://apisecurity.io/feed/index.xml", Label: "APIsecurity.io"},
	{URL: "https://salt.security/blog/rss.xml", Label: "Salt Security Blog"},
}

// Matched as lowercase substrings of title + summary.
var defaultKeywords = []string{
	"api",
	"apis",
	"jwt",
	"oauth",
	"openid",
	"graphql",
	"rest api",
	"grpc",
	"webhook",
	"endpoint",
	"api key",
	"api gateway",
	"swagger",
	"openapi",
	"owasp",
	"bola",
	"idor",
	"broken object",
	"broken authentication",
	"token",
	"authorization bypass",
	"authentication bypass",
	"rate limit",
	"ssrf",
	"injection",
	"microservice",
}
