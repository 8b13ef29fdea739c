package products

import (
	"context"
	"log"
	"net/http"
	"time"

	"herbsera/db"
	"herbsera/models"
	"herbsera/rdx"
	"herbsera/utils"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UploadProductImage handles POST /api/products/:id/images (admin,
// multipart). Stores the file with a generated thumbnail under /static
// and appends it to the product's image list.
func UploadProductImage(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	productID := ps.ByName("id")

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Image file is required")
		return
	}
	defer file.Close()

	if !utils.ValidateImageFileType(header) {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid file type. Supported formats: JPEG, PNG, WebP, GIF.")
		return
	}

	url, thumbURL, err := utils.SaveProductImage(file, header)
	if err != nil {
		log.Printf("UploadProductImage save failed: %v", err)
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store image")
		return
	}

	image := models.ProductImage{URL: url, ThumbURL: thumbURL, Alt: r.FormValue("alt")}

	res := db.ProductsCollection.FindOneAndUpdate(ctx,
		bson.M{"productId": productID},
		bson.M{"$push": bson.M{"images": image}, "$set": bson.M{"updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After))

	var product models.Product
	if err := res.Decode(&product); err != nil {
		// Orphaned files are cleaned up right away; the handle is the URL.
		utils.DeleteStoredImage(url)
		utils.DeleteStoredImage(thumbURL)
		utils.RespondWithError(w, http.StatusNotFound, "Product not found")
		return
	}

	rdx.InvalidateProduct(productID)
	utils.RespondSuccessMsg(w, http.StatusCreated, product, "Image uploaded successfully")
}
