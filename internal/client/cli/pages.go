package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/radiologix/internal/client/models"
)

type faqEntry struct {
	question string
	answer   string
}

var faqEntries = []faqEntry{
	{
		"How accurate is the AI analysis?",
		"Our AI technology has been trained on thousands of medical images and achieves high accuracy rates. However, all AI-generated reports should be reviewed by qualified healthcare professionals for final diagnosis.",
	},
	{
		"What types of scans are supported?",
		"We currently support CT scans, X-rays, MRI, and ultrasound images. We're continuously working to expand our capabilities to include more imaging modalities.",
	},
	{
		"How long does it take to get results?",
		"Our AI analysis typically provides results within minutes of uploading your scan. The exact time depends on the image size and complexity.",
	},
	{
		"Is my data secure?",
		"Yes, we take data security very seriously. All uploaded images and reports are encrypted and stored securely. We comply with healthcare data protection regulations.",
	},
	{
		"Can I download my reports?",
		"Yes, you can access and download all your scan reports from your account dashboard at any time.",
	},
}

func printHome(w io.Writer) {
	fmt.Fprintln(w, "Radiologix - Advanced Radiology Solutions")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Experience cutting-edge AI-powered radiology reporting with our state-of-the-art technology.")
	fmt.Fprintln(w, "Fast, accurate, and reliable medical imaging analysis at your fingertips.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type 'scans' to see what we analyse, or 'login' to start scanning.")
}

func printScanOverview(w io.Writer) {
	fmt.Fprintln(w, "Our Scanning Services")
	fmt.Fprintln(w)
	for _, info := range models.ScanTypes() {
		fmt.Fprintf(w, "  %-11s %-11s %s\n", info.Type, info.Name, info.Summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Type 'scan <type>' for details.")
}

func printScanPage(w io.Writer, args []string) error {
	if len(args) == 0 {
		printScanOverview(w)
		return nil
	}
	st, err := models.ParseScanType(args[0])
	if err != nil {
		fmt.Fprintln(w, "Scan type not found")
		return err
	}
	info, _ := st.Info()
	fmt.Fprintln(w, info.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(info.Name)))
	fmt.Fprintln(w, info.Description)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Upload with: upload %s <path>\n", st)
	return nil
}

func printAbout(w io.Writer) {
	fmt.Fprintln(w, "About Radiologix")
	fmt.Fprintln(w, "Revolutionizing radiology with cutting-edge AI technology")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Our Mission")
	fmt.Fprintln(w, "At Radiologix, we are committed to transforming healthcare through advanced radiology solutions.")
	fmt.Fprintln(w, "Our mission is to provide healthcare professionals with the most accurate, efficient, and accessible")
	fmt.Fprintln(w, "radiology services powered by artificial intelligence and cutting-edge technology.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Our Technology")
	fmt.Fprintln(w, "  - Rapid and accurate image analysis")
	fmt.Fprintln(w, "  - Automated report generation")
	fmt.Fprintln(w, "  - Quality assurance and validation")
	fmt.Fprintln(w, "  - Integration with existing healthcare systems")
}

func printFAQ(w io.Writer) {
	fmt.Fprintln(w, "Frequently Asked Questions")
	for i, e := range faqEntries {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "%d. %s\n", i+1, e.question)
		fmt.Fprintf(w, "   %s\n", e.answer)
	}
}

func printContact(w io.Writer, serverURL string) {
	fmt.Fprintln(w, "Contact Us")
	fmt.Fprintln(w, "Have questions about our services? We'd love to hear from you.")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "API endpoint: %s\n", serverURL)
}
