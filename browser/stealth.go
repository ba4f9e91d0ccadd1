package browser

// stealthScript runs before any page script and papers over the most common
// headless-Chrome tells: the webdriver flag, the missing chrome runtime
// object, and empty plugin and language lists.
const stealthScript = `
Object.defineProperty(navigator, 'webdriver', { get: () => undefined });
window.chrome = window.chrome || {};
window.chrome.runtime = window.chrome.runtime || {};
Object.defineProperty(navigator, 'languages', { get: () => ['en-US', 'en'] });
Object.defineProperty(navigator, 'plugins', { get: () => [1, 2, 3, 4, 5] });
const originalQuery = window.navigator.permissions.query;
window.navigator.permissions.query = (parameters) =>
	parameters && parameters.name === 'notifications'
		? Promise.resolve({ state: 'default' })
		: originalQuery(parameters);
`
