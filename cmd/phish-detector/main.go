package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/elmehdi/phishmail/internal/adapters/filter"
	"github.com/elmehdi/phishmail/internal/config"
	"github.com/elmehdi/phishmail/internal/core"
	"github.com/elmehdi/phishmail/internal/factory"
	"github.com/elmehdi/phishmail/internal/logging"
	"github.com/elmehdi/phishmail/internal/report"
	"github.com/elmehdi/phishmail/internal/trust"
	"github.com/elmehdi/phishmail/internal/urlfeat"
)

var (
	// Model flags
	modelsDir = flag.String("models-dir", "/var/lib/phishmail/models", "Directory holding the exported model artifacts")

	// Fusion flags
	urlStrong      = flag.Float64("url-strong", 0.7, "Probability above which a single URL is strong evidence")
	urlCutoff      = flag.Float64("url-cutoff", 0.6, "Probability above which a URL counts as phishing")
	midThreshold   = flag.Float64("mid-threshold", 0.4, "Fused score below which an email is legitimate")
	emailThreshold = flag.Float64("email-threshold", 0.6, "Fused score at or above which an email is fraudulent")
	alpha          = flag.Float64("alpha", 0.5, "Weight of the content probability in the fused score")

	// Trust flags
	trustedDomains = flag.String("trusted", "", "Comma-separated list of trusted sender domains")

	// Input flags
	inputFile  = flag.String("file", "", "Input email file (use stdin if not specified)")
	verbose    = flag.Bool("verbose", false, "Enable verbose logging")
	jsonLog    = flag.Bool("json-log", false, "Output logs in JSON format")
	configFile = flag.String("config", "", "Path to config file (overrides command line flags)")
)

func main() {
	flag.Parse()

	var cfg *config.Config
	var err error

	// Initialize logger
	logger, err := logging.InitConsoleLogger(*verbose, *jsonLog)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration from file if specified
	if *configFile != "" {
		cfg, err = config.New()
		if err != nil {
			logger.Fatal("Failed to load configuration", zap.Error(err))
		}
		logger.Info("Loaded configuration from file", zap.String("file", cfg.GetViper().ConfigFileUsed()))
	} else {
		// Create config from command line flags
		cfg = createConfigFromFlags()
	}

	// Load model artifacts
	modelFactory := factory.NewModelFactory(cfg, logger)
	artifacts, err := modelFactory.LoadArtifacts()
	if err != nil {
		logger.Fatal("Failed to load model artifacts", zap.Error(err))
	}

	// Build the analysis pipeline
	extractor := urlfeat.NewExtractor(artifacts.URLVectorizer, artifacts.TLDEncoder)
	fusionConfig := cfg.GetFusion()
	policy := core.FusionPolicy{
		URLStrong:         fusionConfig.URLStrongThreshold,
		URLPhishingCutoff: fusionConfig.URLPhishingCutoff,
		Mid:               fusionConfig.MidThreshold,
		EmailThreshold:    fusionConfig.EmailThreshold,
		Alpha:             fusionConfig.Alpha,
	}
	service := core.NewAnalyzerService(artifacts.ContentModel, artifacts.URLModel, extractor, artifacts.URLSchema, policy, logger)
	generator := report.NewGenerator(artifacts.ContentModel, artifacts.URLModel)

	// Parse trusted domains
	var domains []string
	if *trustedDomains != "" {
		domains = strings.Split(*trustedDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
	} else {
		domains = cfg.GetStringSlice("trust.domains")
	}

	if len(domains) > 0 {
		logger.Info("Using trusted domains", zap.Strings("domains", domains))
	}

	// Create trusted-domain checker
	trustChecker := trust.NewChecker(domains, logger)

	// Read email from file or stdin
	var emailReader io.Reader
	if *inputFile != "" {
		file, err := os.Open(*inputFile)
		if err != nil {
			logger.Fatal("Failed to open input file", zap.Error(err), zap.String("file", *inputFile))
		}
		defer file.Close()
		emailReader = file
		logger.Info("Reading email from file", zap.String("file", *inputFile))
	} else {
		emailReader = os.Stdin
		logger.Info("Reading email from stdin")
	}

	// Parse email
	msg, err := mail.ReadMessage(bufio.NewReader(emailReader))
	if err != nil {
		logger.Fatal("Failed to parse email", zap.Error(err))
	}

	// Extract email content
	from := msg.Header.Get("From")
	to := msg.Header.Get("To")
	subject := msg.Header.Get("Subject")

	// Read body
	bodyBytes, err := io.ReadAll(msg.Body)
	if err != nil {
		logger.Fatal("Failed to read email body", zap.Error(err))
	}
	body := string(bodyBytes)

	// Create email object
	email := &core.Email{
		From:    from,
		To:      strings.Split(to, ","),
		Subject: subject,
		Body:    body,
		Headers: make(map[string][]string),
	}

	// Copy headers
	for k, v := range msg.Header {
		email.Headers[k] = v
	}

	// Check if sender domain is trusted
	if trustChecker.IsTrusted(from) {
		fmt.Printf("\n=== Email Summary ===\n")
		fmt.Printf("From: %s\n", from)
		fmt.Printf("To: %s\n", to)
		fmt.Printf("Subject: %s\n", subject)
		fmt.Printf("\n=== Results ===\n")
		fmt.Printf("Verdict: %s (sender domain is trusted)\n", core.VerdictLegitimate)
		fmt.Printf("Final score: 0.0\n")
		return
	}

	// Analyze email and print the report
	cliFilter, err := filter.NewCliFilter(service, generator, logger, *verbose)
	if err != nil {
		logger.Fatal("Failed to create CLI filter", zap.Error(err))
	}

	if _, err := cliFilter.ProcessEmail(context.Background(), email); err != nil {
		logger.Fatal("Failed to analyze email", zap.Error(err))
	}
}

// createConfigFromFlags creates a configuration from command line flags
func createConfigFromFlags() *config.Config {
	v := config.NewEmptyViper()

	// Set model artifact directory
	v.Set("models.dir", *modelsDir)

	// Set fusion thresholds
	v.Set("fusion.url_strong_threshold", *urlStrong)
	v.Set("fusion.url_phishing_cutoff", *urlCutoff)
	v.Set("fusion.mid_threshold", *midThreshold)
	v.Set("fusion.email_threshold", *emailThreshold)
	v.Set("fusion.alpha", *alpha)

	// Set trusted domains
	if *trustedDomains != "" {
		domains := strings.Split(*trustedDomains, ",")
		for i, domain := range domains {
			domains[i] = strings.TrimSpace(domain)
		}
		v.Set("trust.domains", domains)
	} else {
		v.Set("trust.domains", []string{})
	}

	return config.NewFromViper(v)
}
