// @title           joe-blog API
// @version         1.0
// @description     Generate SEO blog articles from a prompt template. Each request carries its own provider API key.
// @BasePath        /api/v1
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                "Bearer jb_..." when the server requires API tokens.
package api
