package riskmodel

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/RibbonBlockchain/TradelineAI/internal/config"
	"github.com/RibbonBlockchain/TradelineAI/internal/models"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client handles integration with the external risk prediction service
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new risk model client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RiskModelURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// buildRequest creates the XML assessment request for a tradeline
func (c *Client) buildRequest(tradeline *models.Tradeline) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="utf-8"`)
	root := doc.CreateElement("RiskAssessmentRequest")
	root.CreateElement("CreditLimit").SetText(fmt.Sprintf("%.2f", tradeline.CreditLimit))
	root.CreateElement("AvailableLimit").SetText(fmt.Sprintf("%.2f", tradeline.AvailableLimit))
	root.CreateElement("InterestRate").SetText(fmt.Sprintf("%.2f", tradeline.InterestRate))
	root.CreateElement("AccountType").SetText(tradeline.AccountType)

	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v", err)
	}
	return body, nil
}

// sendRequest posts the XML request to the prediction service
func (c *Client) sendRequest(ctx context.Context, body []byte) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/xml; charset=utf-8")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Risk model XML response: %s", string(raw))
	return raw, nil
}

// parseResponse extracts the assessment from the XML response
func (c *Client) parseResponse(rawBody []byte) (*models.RiskAssessment, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	root := doc.FindElement("//RiskAssessmentResponse")
	if root == nil {
		return nil, fmt.Errorf("no assessment data found in XML")
	}

	scoreElement := root.FindElement("./RiskScore")
	if scoreElement == nil {
		return nil, fmt.Errorf("risk score element not found in XML")
	}
	var score float64
	if _, err := fmt.Sscanf(scoreElement.Text(), "%f", &score); err != nil {
		return nil, fmt.Errorf("failed to parse risk score: %v", err)
	}

	categoryElement := root.FindElement("./RiskCategory")
	if categoryElement == nil {
		return nil, fmt.Errorf("risk category element not found in XML")
	}
	category := categoryElement.Text()
	switch category {
	case models.RiskLow, models.RiskMedium, models.RiskHigh:
	default:
		return nil, fmt.Errorf("unknown risk category: %q", category)
	}

	assessment := &models.RiskAssessment{
		RiskScore:    score,
		RiskCategory: category,
	}
	for _, rec := range root.FindElements("./Recommendations/Recommendation") {
		assessment.Recommendations = append(assessment.Recommendations, rec.Text())
	}
	return assessment, nil
}

// PredictTradelineRisk classifies a tradeline's attributes via the
// prediction service
func (c *Client) PredictTradelineRisk(ctx context.Context, tradeline *models.Tradeline) (*models.RiskAssessment, error) {
	body, err := c.buildRequest(tradeline)
	if err != nil {
		return nil, err
	}

	raw, err := c.sendRequest(ctx, body)
	if err != nil {
		return nil, err
	}

	assessment, err := c.parseResponse(raw)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Risk assessment for tradeline %d: %.1f (%s)",
		tradeline.ID, assessment.RiskScore, assessment.RiskCategory)
	return assessment, nil
}
