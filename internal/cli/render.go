package cli

import (
	"fmt"
	"strings"

	"loadboard/internal/loads"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	pendingStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	agreedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
)

func renderStatus(s loads.Status) string {
	if s == loads.StatusAgreed {
		return agreedStyle.Render(string(s))
	}
	return pendingStyle.Render(string(s))
}

func renderChannel(assignedViaURL bool) string {
	if assignedViaURL {
		return "url_api"
	}
	return "manual"
}

func printLoadTable(ls []loads.Load) {
	if len(ls) == 0 {
		fmt.Println(faintStyle.Render("no loads found"))
		return
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("%-14s %-18s %-18s %-8s %-8s %10s %10s",
		"LOAD", "ORIGIN", "DEST", "STATUS", "CHANNEL", "RATE", "AGREED")))
	fmt.Println(faintStyle.Render(strings.Repeat("-", 92)))

	for _, l := range ls {
		fmt.Printf("%-14s %-18s %-18s %-17s %-8s %10s %10s\n",
			truncate(l.LoadID, 14),
			truncate(l.Origin, 18),
			truncate(l.Destination, 18),
			renderStatus(l.Status), // styled width differs from visible width
			renderChannel(l.AssignedViaURL),
			money(l.LoadboardRate),
			money(l.AgreedPrice),
		)
	}
	fmt.Println(faintStyle.Render(fmt.Sprintf("%d load(s)", len(ls))))
}

func printLoad(l loads.Load) {
	fmt.Println(titleStyle.Render(l.LoadID))
	fmt.Printf("  id:        %s\n", l.ID)
	fmt.Printf("  route:     %s -> %s\n", l.Origin, l.Destination)
	fmt.Printf("  pickup:    %s\n", l.PickupDatetime.Format("2006-01-02 15:04 MST"))
	fmt.Printf("  delivery:  %s\n", l.DeliveryDatetime.Format("2006-01-02 15:04 MST"))
	fmt.Printf("  status:    %s\n", renderStatus(l.Status))
	fmt.Printf("  channel:   %s\n", renderChannel(l.AssignedViaURL))
	if l.EquipmentType != nil {
		fmt.Printf("  equipment: %s\n", *l.EquipmentType)
	}
	if l.CommodityType != nil {
		fmt.Printf("  commodity: %s\n", *l.CommodityType)
	}
	if l.LoadboardRate != nil {
		fmt.Printf("  rate:      %s\n", money(l.LoadboardRate))
	}
	if l.AgreedPrice != nil {
		fmt.Printf("  agreed:    %s\n", money(l.AgreedPrice))
	}
	if l.CarrierDescription != nil {
		fmt.Printf("  carrier:   %s\n", *l.CarrierDescription)
	}
	if l.Miles != nil {
		fmt.Printf("  miles:     %.0f\n", *l.Miles)
	}
	if l.Notes != nil {
		fmt.Printf("  notes:     %s\n", *l.Notes)
	}
}

func printCallTable(calls []loads.PhoneCall) {
	if len(calls) == 0 {
		fmt.Println(faintStyle.Render("no phone calls"))
		return
	}
	fmt.Println(headerStyle.Render(fmt.Sprintf("%-8s %-10s %-8s %8s  %s",
		"TYPE", "SENTIMENT", "AGREED", "SECONDS", "CREATED")))
	for _, c := range calls {
		agreed := "no"
		if c.Agreed {
			agreed = "yes"
		}
		fmt.Printf("%-8s %-10s %-8s %8.0f  %s\n",
			c.CallType, c.Sentiment, agreed, c.Seconds,
			c.CreatedAt.Format("2006-01-02 15:04"))
	}
	fmt.Println(faintStyle.Render(fmt.Sprintf("%d call(s)", len(calls))))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	if n <= 3 {
		return s[:n]
	}
	return s[:n-3] + "..."
}

func money(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("$%.2f", *p)
}
