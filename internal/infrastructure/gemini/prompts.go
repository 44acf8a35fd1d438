package gemini

import "fmt"

func comparisonPrompt(query string) string {
	return fmt.Sprintf(`Perform a real-time web search for the product: "%s".
Locate this product on these three specific Indian retailers:
1. amazon.in
2. flipkart.com
3. croma.com

For EACH store, extract:
- The exact full product name.
- The current price in INR (numeric value only).
- The user rating (out of 5).
- At least 3 key specifications or features.
- Estimated delivery time.
- The direct URL to the product page.
- A direct link to the product image (imageUrl).
- A summary of user reviews with a sentiment of Positive, Neutral or Negative, highlights and a score from 0 to 100.

Format the output ONLY as a JSON array of objects with keys:
"name", "website", "price", "features", "rating", "deliveryTime", "url", "imageUrl", "reviewSummary".`, query)
}

func recommendationPrompt(query string) string {
	return fmt.Sprintf(`Based on the product "%s", find 4 similar products available in Indian online stores. `+
		`Provide as JSON array of objects with keys "name", "website", "price", "rating", "url", "imageUrl", "category".`, query)
}

func advicePrompt(query, productsJSON string) string {
	return fmt.Sprintf(`User is asking: "%s". Based on these products: %s, provide a deep-thinking analysis of the best value for money. `+
		`Consider features, delivery, and ratings. Compare specific aspects like warranty, brand reliability, and price per feature. `+
		`Respond in clear markdown.`, query, productsJSON)
}

func liveDealsPrompt(query string) string {
	return fmt.Sprintf(`The user is looking for deal comparisons: "%s". Search for current prices and availability `+
		`across major Indian retailers and provide a comprehensive summary.`, query)
}
