package service

import (
	"fmt"
	"strings"

	"alpha_radar/internal/domain/entity"
	"alpha_radar/internal/pkg/utils"
)

// FormatTopMessage renders the ranked top list as Telegram Markdown.
func FormatTopMessage(top []entity.ScoredCandidate) string {
	lines := []string{fmt.Sprintf("🔥 *TOP %d ALPHA DETECTED*\n", len(top))}
	for i, c := range top {
		url := "N/A"
		if c.PairURL != nil {
			url = *c.PairURL
		}
		lines = append(lines, fmt.Sprintf(
			"*%d) %s*  `%s`\n*Score:* %s / 100\n*MC:* $%s\n*Liquidity:* $%s\n*Vol 24h:* $%s\n[View on DexScreener](%s)\n",
			i+1,
			c.Symbol(),
			c.Chain(),
			utils.FormatScore(c.Score),
			utils.FormatUSD(c.FdvUSD),
			utils.FormatUSD(c.LiquidityUSD),
			utils.FormatUSD(c.Volume24h),
			url,
		))
	}
	return strings.Join(lines, "\n")
}

// TelegramTestMessage is sent by the connectivity check command.
const TelegramTestMessage = "✅ *alpha radar* test message: Telegram delivery is configured."
